package service

import (
	"context"
	"log"

	"github.com/lib/pq"
	"github.com/user/rapidocine/internal/model"
	"github.com/user/rapidocine/internal/repository"
	"golang.org/x/sync/singleflight"
)

// CatalogService 把抓取管线的结果落库
//
// 抓取本身是纯函数式的；所有持久化决策都在这一层。
type CatalogService struct {
	movieRepo *repository.MovieRepository
	fetcher   *MovieFetcher
	group     singleflight.Group
}

// NewCatalogService 创建目录服务
func NewCatalogService(repo *repository.MovieRepository, fetcher *MovieFetcher) *CatalogService {
	return &CatalogService{
		movieRepo: repo,
		fetcher:   fetcher,
	}
}

// ImportByIMDbID 按 IMDb ID 抓取并入库
//
// 使用 singleflight 避免并发重复抓取同一部电影。
func (s *CatalogService) ImportByIMDbID(ctx context.Context, imdbID string) (*model.Movie, error) {
	val, err, _ := s.group.Do(imdbID, func() (interface{}, error) {
		return s.importInternal(ctx, imdbID)
	})
	if err != nil {
		return nil, err
	}
	return val.(*model.Movie), nil
}

func (s *CatalogService) importInternal(ctx context.Context, imdbID string) (*model.Movie, error) {
	external, err := s.fetcher.FetchByIMDbID(ctx, imdbID)
	if err != nil {
		return nil, err
	}

	movie := ExternalToMovie(external)
	if err := s.movieRepo.Upsert(movie); err != nil {
		return nil, err
	}

	// Upsert 冲突更新时不回填 ID，重查一次拿完整记录
	saved, err := s.movieRepo.FindByIMDbID(external.IMDbID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return movie, nil
	}
	return saved, nil
}

// ImportSafeAsync 异步安全入库（后台刷新用，吞掉一切错误）
func (s *CatalogService) ImportSafeAsync(imdbID string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Catalog] 异步导入发生恐慌 (IMDbID: %s): %v", imdbID, r)
			}
		}()

		if _, err := s.ImportByIMDbID(context.Background(), imdbID); err != nil {
			log.Printf("[Catalog] 异步导入失败 (IMDbID: %s): %v", imdbID, err)
		}
	}()
}

// ExternalToMovie 把外部记录转成持久化模型
func ExternalToMovie(external *model.ExternalMovie) *model.Movie {
	return &model.Movie{
		IMDbID:      external.IMDbID,
		Title:       external.Title,
		Year:        external.Year,
		PosterURL:   external.PosterURL,
		BackdropURL: external.BackdropURL,
		Plot:        external.Plot,
		Genres:      pq.StringArray(external.Genres),
		Runtime:     external.Runtime,
		Director:    external.Director,
		Actors:      external.Actors,
		Country:     external.Country,
		Language:    external.Language,
		Awards:      external.Awards,
		IMDbRating:  external.Rating,
		IMDbVotes:   external.VoteCount,
		TMDbRating:  external.TMDbRating,
		TMDbVotes:   external.TMDbVotes,
	}
}
