package model

import (
	"time"

	"github.com/lib/pq"
)

// Movie 电影模型（入库后的规范记录）
type Movie struct {
	ID          int            `json:"id" db:"id"`
	IMDbID      string         `json:"imdb_id" db:"imdb_id" gorm:"unique"`
	Title       string         `json:"title" db:"title" gorm:"index"`
	Year        int            `json:"year" db:"year" gorm:"index"`
	PosterURL   string         `json:"poster_url" db:"poster_url"`
	BackdropURL string         `json:"backdrop_url" db:"backdrop_url"`
	Plot        string         `json:"plot" db:"plot"`
	Genres      pq.StringArray `json:"genres" db:"genres" gorm:"type:text[]"`
	Runtime     int            `json:"runtime" db:"runtime"`
	Director    string         `json:"director" db:"director"`
	Actors      string         `json:"actors" db:"actors"`
	Country     string         `json:"country" db:"country"`
	Language    string         `json:"language" db:"language"`
	Awards      string         `json:"awards" db:"awards"`
	IMDbRating  float64        `json:"imdb_rating" db:"imdb_rating"`
	IMDbVotes   int            `json:"imdb_votes" db:"imdb_votes"`
	TMDbRating  float64        `json:"tmdb_rating" db:"tmdb_rating"`
	TMDbVotes   int            `json:"tmdb_votes" db:"tmdb_votes"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at" gorm:"index"`
}

// ExternalMovie 外部数据源拼装出的电影记录（不持久化，按值交给调用方）
//
// BackdropURL 只会由 TMDb 增强写入，OMDb 永远不会提供；
// 它非空即说明二级增强成功。
type ExternalMovie struct {
	IMDbID      string   `json:"imdb_id"`
	Title       string   `json:"title"`
	Year        int      `json:"year"` // 0 表示未知
	Plot        string   `json:"plot"`
	Genres      []string `json:"genres"`
	PosterURL   string   `json:"poster_url"`
	BackdropURL string   `json:"backdrop_url"`
	Rating      float64  `json:"rating"`
	VoteCount   int      `json:"vote_count"`
	Runtime     int      `json:"runtime"`
	Released    string   `json:"released"`
	Director    string   `json:"director"`
	Actors      string   `json:"actors"`
	Country     string   `json:"country"`
	Language    string   `json:"language"`
	Awards      string   `json:"awards"`
	TMDbRating  float64  `json:"tmdb_rating"`
	TMDbVotes   int      `json:"tmdb_votes"`
}

// MovieSummary 搜索接口返回的精简条目
type MovieSummary struct {
	IMDbID    string `json:"imdb_id"`
	Title     string `json:"title"`
	Year      string `json:"year"`
	PosterURL string `json:"poster_url"`
}
