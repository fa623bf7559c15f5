package repository

import (
	"errors"
	"time"

	"github.com/user/rapidocine/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Upsert 添加或更新待看条目（同一用户同一电影只保留一条，状态覆盖）
func (r *WatchlistRepository) Upsert(item *model.WatchlistItem) error {
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(item).Error
}

// FindByID 根据 ID 查找待看条目
func (r *WatchlistRepository) FindByID(id int) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	err := r.db.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByUserAndMovie 查找某用户对某电影的待看条目
func (r *WatchlistRepository) FindByUserAndMovie(userID, movieID int) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	err := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List 分页获取待看清单
func (r *WatchlistRepository) List(limit, offset int) ([]*model.WatchlistItem, error) {
	var items []*model.WatchlistItem
	err := r.db.Order("added_at DESC").Limit(limit).Offset(offset).Find(&items).Error
	return items, err
}

// ListByUser 获取用户的待看清单（status 为空时不过滤）
func (r *WatchlistRepository) ListByUser(userID int, status string) ([]*model.WatchlistItem, error) {
	query := r.db.Preload("Movie").Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var items []*model.WatchlistItem
	err := query.Order("added_at DESC").Find(&items).Error
	return items, err
}

// ListByMovie 获取把某电影加入待看清单的条目
func (r *WatchlistRepository) ListByMovie(movieID int) ([]*model.WatchlistItem, error) {
	var items []*model.WatchlistItem
	err := r.db.Where("movie_id = ?", movieID).Order("added_at DESC").Find(&items).Error
	return items, err
}

// UpdateStatus 更新待看条目状态
func (r *WatchlistRepository) UpdateStatus(id int, status string) error {
	return r.db.Model(&model.WatchlistItem{}).Where("id = ?", id).Update("status", status).Error
}

// Delete 删除待看条目
func (r *WatchlistRepository) Delete(id int) error {
	return r.db.Delete(&model.WatchlistItem{}, id).Error
}

// CountByUser 统计用户待看清单条目数
func (r *WatchlistRepository) CountByUser(userID int) (int, error) {
	var count int64
	err := r.db.Model(&model.WatchlistItem{}).Where("user_id = ?", userID).Count(&count).Error
	return int(count), err
}
