package repository

import (
	"errors"
	"time"

	"github.com/user/rapidocine/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// FindByID 根据 ID 查找电影
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// FindByIMDbID 根据 IMDb ID 查找电影
func (r *MovieRepository) FindByIMDbID(imdbID string) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Where("imdb_id = ?", imdbID).First(&movie).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// List 分页获取电影列表
func (r *MovieRepository) List(limit, offset int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Order("id ASC").Limit(limit).Offset(offset).Find(&movies).Error
	return movies, err
}

// SearchByTitle 按标题模糊搜索
func (r *MovieRepository) SearchByTitle(title string) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Where("title ILIKE ?", "%"+title+"%").Order("year DESC").Find(&movies).Error
	return movies, err
}

// FilterByYear 按年份筛选
func (r *MovieRepository) FilterByYear(year int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Where("year = ?", year).Order("title ASC").Find(&movies).Error
	return movies, err
}

// FilterByGenre 按类型筛选（genres 是 text[] 列，做不区分大小写的包含匹配）
func (r *MovieRepository) FilterByGenre(genre string) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.
		Where("EXISTS (SELECT 1 FROM unnest(genres) AS g WHERE g ILIKE ?)", "%"+genre+"%").
		Order("year DESC").
		Find(&movies).Error
	return movies, err
}

// Create 创建电影
func (r *MovieRepository) Create(movie *model.Movie) error {
	now := time.Now()
	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = now
	}
	movie.UpdatedAt = now
	return r.db.Create(movie).Error
}

// Upsert 按 IMDb ID 创建或更新电影
func (r *MovieRepository) Upsert(movie *model.Movie) error {
	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = time.Now()
	}
	movie.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "imdb_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "year", "poster_url", "backdrop_url", "plot", "genres",
			"runtime", "director", "actors", "country", "language", "awards",
			"imdb_rating", "imdb_votes", "tmdb_rating", "tmdb_votes", "updated_at",
		}),
	}).Create(movie).Error
}

// Update 更新电影字段
func (r *MovieRepository) Update(id int, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	return r.db.Model(&model.Movie{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除电影（评分/评论/待看条目一并清理）
func (r *MovieRepository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", id).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", id).Delete(&model.WatchlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Movie{}, id).Error
	})
}

// Count 获取电影总数
func (r *MovieRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Count(&count).Error
	return count, err
}

// TopRatedMovie 用户个人榜单条目
type TopRatedMovie struct {
	MovieID   int       `json:"movie_id"`
	IMDbID    string    `json:"imdb_id"`
	Title     string    `json:"title"`
	Year      int       `json:"year"`
	PosterURL string    `json:"poster_url"`
	Score     int       `json:"score"`
	RatedAt   time.Time `json:"rated_at"`
}

// TopRatedByUser 用户的"最高评价"榜单：取该用户对每部电影的最新评分，按分数排序
func (r *MovieRepository) TopRatedByUser(userID, limit int) ([]TopRatedMovie, error) {
	var results []TopRatedMovie
	err := r.db.Raw(`
		SELECT m.id AS movie_id, m.imdb_id, m.title, m.year, m.poster_url,
		       r.score, r.updated_at AS rated_at
		FROM movies m
		JOIN ratings r ON r.movie_id = m.id
		WHERE r.user_id = ?
		ORDER BY r.score DESC, r.updated_at DESC
		LIMIT ?
	`, userID, limit).Scan(&results).Error
	return results, err
}
