package handler

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/user/rapidocine/internal/config"
	"github.com/user/rapidocine/internal/repository"
	"github.com/user/rapidocine/internal/service"
)

var imdbIDPattern = regexp.MustCompile(`^tt\d{7,8}$`)

func init() {
	// 注册 imdbid 校验规则，供 binding 标签使用
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("imdbid", func(fl validator.FieldLevel) bool {
			return imdbIDPattern.MatchString(fl.Field().String())
		})
	}
}

// Handler HTTP 处理器
type Handler struct {
	Repos   *repository.Repositories
	Config  *config.Config
	Fetcher *service.MovieFetcher
	Catalog *service.CatalogService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	// 创建元数据抓取管线（OMDb 主源 + TMDb 补充源）
	omdb := service.NewOMDbService(cfg.OMDbAPIKey)
	tmdb := service.NewTMDbService(cfg.TMDbAPIKey)
	fetcher := service.NewMovieFetcher(omdb, tmdb)

	// 创建目录服务
	catalog := service.NewCatalogService(repos.Movie, fetcher)

	return &Handler{
		Repos:   repos,
		Config:  cfg,
		Fetcher: fetcher,
		Catalog: catalog,
	}
}
