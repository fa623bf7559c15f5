package repository

import (
	"errors"
	"time"

	"github.com/user/rapidocine/internal/model"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	return r.db.Create(comment).Error
}

// FindByID 根据 ID 查找评论
func (r *CommentRepository) FindByID(id int) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// List 分页获取评论列表
func (r *CommentRepository) List(limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&comments).Error
	return comments, err
}

// ListByUser 获取某用户的评论
func (r *CommentRepository) ListByUser(userID int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Preload("Movie").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// ListByMovie 获取某电影的评论
func (r *CommentRepository) ListByMovie(movieID int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Preload("User").
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// UpdateContent 更新评论内容
func (r *CommentRepository) UpdateContent(id int, content string) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).Update("content", content).Error
}

// Delete 删除评论
func (r *CommentRepository) Delete(id int) error {
	return r.db.Delete(&model.Comment{}, id).Error
}
