package model

import (
	"time"
)

// Rating 评分（1-5 星，同一用户对同一电影只保留一条）
type Rating struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_movie_rating"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_user_movie_rating"`
	Score     int       `json:"score" db:"score"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	User      *User     `json:"user,omitempty"`
	Movie     *Movie    `json:"movie,omitempty"`
}

// Comment 评论
type Comment struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"index"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"index"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	User      *User     `json:"user,omitempty"`
	Movie     *Movie    `json:"movie,omitempty"`
}

// 待看清单状态
const (
	WatchStatusToWatch  = "TO_WATCH"
	WatchStatusWatching = "WATCHING"
	WatchStatusWatched  = "WATCHED"
)

// WatchlistItem 待看清单条目（同一用户对同一电影只保留一条）
type WatchlistItem struct {
	ID      int       `json:"id" db:"id"`
	UserID  int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_movie_watchlist"`
	MovieID int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_user_movie_watchlist"`
	Status  string    `json:"status" db:"status"`
	AddedAt time.Time `json:"added_at" db:"added_at"`
	Movie   *Movie    `json:"movie,omitempty"`
}
