package service

import (
	"context"

	"github.com/user/rapidocine/internal/model"
)

// MovieFetcher 元数据抓取管线
//
// 流程：OMDb 主抓取（必须成功，否则无记录）→ TMDb 增强（尽力而为，
// 失败域独立）→ 拼装好的记录按值交还调用方。本组件不做持久化。
type MovieFetcher struct {
	omdb *OMDbService
	tmdb *TMDbService
}

// NewMovieFetcher 组装抓取管线
func NewMovieFetcher(omdb *OMDbService, tmdb *TMDbService) *MovieFetcher {
	return &MovieFetcher{
		omdb: omdb,
		tmdb: tmdb,
	}
}

// FetchByIMDbID 按 IMDb ID 抓取并增强一条电影记录
//
// 主抓取失败时直接返回错误（ErrMovieNotFound / ErrProviderUnavailable），
// 不会返回只有部分数据的记录；增强失败时返回仅含 OMDb 数据的记录。
func (f *MovieFetcher) FetchByIMDbID(ctx context.Context, imdbID string) (*model.ExternalMovie, error) {
	movie, err := f.omdb.FetchByIMDbID(ctx, imdbID)
	if err != nil {
		return nil, err
	}
	f.tmdb.Enhance(ctx, movie)
	return movie, nil
}

// FetchByTitle 按标题抓取并增强一条电影记录
func (f *MovieFetcher) FetchByTitle(ctx context.Context, title string) (*model.ExternalMovie, error) {
	movie, err := f.omdb.FetchByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	f.tmdb.Enhance(ctx, movie)
	return movie, nil
}

// Search 按关键词搜索电影（只查 OMDb，不增强）
func (f *MovieFetcher) Search(ctx context.Context, query string) ([]model.MovieSummary, error) {
	return f.omdb.Search(ctx, query)
}

// GetOrFetchRating 查询单部电影的 IMDb 评分（带缓存）
func (f *MovieFetcher) GetOrFetchRating(ctx context.Context, imdbID string) (float64, bool) {
	return f.omdb.GetOrFetchRating(ctx, imdbID)
}
