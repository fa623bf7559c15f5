package repository

import (
	"errors"
	"time"

	"github.com/user/rapidocine/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert 创建或更新评分（同一用户同一电影只保留一条）
func (r *RatingRepository) Upsert(rating *model.Rating) error {
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now()
	}
	rating.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(rating).Error
}

// FindByID 根据 ID 查找评分
func (r *RatingRepository) FindByID(id int) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.First(&rating, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// FindByUserAndMovie 查找某用户对某电影的评分
func (r *RatingRepository) FindByUserAndMovie(userID, movieID int) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// List 分页获取评分列表
func (r *RatingRepository) List(limit, offset int) ([]*model.Rating, error) {
	var ratings []*model.Rating
	err := r.db.Order("id ASC").Limit(limit).Offset(offset).Find(&ratings).Error
	return ratings, err
}

// ListByUser 获取某用户的全部评分
func (r *RatingRepository) ListByUser(userID int) ([]*model.Rating, error) {
	var ratings []*model.Rating
	err := r.db.Preload("Movie").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&ratings).Error
	return ratings, err
}

// ListByMovie 获取某电影的全部评分
func (r *RatingRepository) ListByMovie(movieID int) ([]*model.Rating, error) {
	var ratings []*model.Rating
	err := r.db.Preload("User").
		Where("movie_id = ?", movieID).
		Order("updated_at DESC").
		Find(&ratings).Error
	return ratings, err
}

// UpdateScore 更新评分分数
func (r *RatingRepository) UpdateScore(id, score int) error {
	return r.db.Model(&model.Rating{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"score":      score,
			"updated_at": time.Now(),
		}).Error
}

// Delete 删除评分
func (r *RatingRepository) Delete(id int) error {
	return r.db.Delete(&model.Rating{}, id).Error
}

// AverageByMovie 某电影的平均分（无评分时返回 nil）
func (r *RatingRepository) AverageByMovie(movieID int) (*float64, error) {
	var avg *float64
	err := r.db.Model(&model.Rating{}).
		Where("movie_id = ?", movieID).
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if avg != nil {
		rounded := float64(int(*avg*100+0.5)) / 100
		avg = &rounded
	}
	return avg, nil
}

// CountByMovie 某电影的评分数量
func (r *RatingRepository) CountByMovie(movieID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Rating{}).Where("movie_id = ?", movieID).Count(&count).Error
	return count, err
}
