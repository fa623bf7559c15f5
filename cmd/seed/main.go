package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/user/rapidocine/internal/config"
	"github.com/user/rapidocine/internal/model"
	"github.com/user/rapidocine/internal/repository"
	"github.com/user/rapidocine/internal/service"
)

// 预置导入的热门电影 IMDb ID 列表
var seedIMDbIDs = []string{
	"tt0133093", // The Matrix
	"tt0111161", // The Shawshank Redemption
	"tt0068646", // The Godfather
	"tt0468569", // The Dark Knight
	"tt0816692", // Interstellar
	"tt0110912", // Pulp Fiction
	"tt0109830", // Forrest Gump
	"tt1375666", // Inception
	"tt0137523", // Fight Club
	"tt0167260", // The Lord of the Rings: The Return of the King
}

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	cfg := config.Load()

	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[Seed] 数据库连接失败: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	repos := repository.NewRepositories(db)

	// 幂等：已有数据时直接退出
	count, err := repos.User.Count()
	if err != nil {
		log.Fatalf("[Seed] 查询用户数失败: %v", err)
	}
	if count > 0 {
		log.Println("[Seed] 数据库已有数据，跳过初始化")
		return
	}

	// 创建测试用户
	usersData := []struct {
		Username string
		Email    string
	}{
		{"alice", "alice@example.com"},
		{"bob", "bob@example.com"},
		{"charlie", "charlie@example.com"},
	}

	users := make([]*model.User, 0, len(usersData))
	for _, u := range usersData {
		user, err := repos.User.Create(u.Email, u.Username, "password123")
		if err != nil {
			log.Fatalf("[Seed] 创建用户 %s 失败: %v", u.Username, err)
		}
		users = append(users, user)
	}
	log.Printf("[Seed] 已创建 %d 个用户", len(users))

	// 通过抓取管线导入电影
	omdb := service.NewOMDbService(cfg.OMDbAPIKey)
	tmdb := service.NewTMDbService(cfg.TMDbAPIKey)
	fetcher := service.NewMovieFetcher(omdb, tmdb)
	catalog := service.NewCatalogService(repos.Movie, fetcher)

	log.Println("[Seed] 正在从 OMDb 导入电影...")

	movies := make([]*model.Movie, 0, len(seedIMDbIDs))
	for _, imdbID := range seedIMDbIDs {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		movie, err := catalog.ImportByIMDbID(ctx, imdbID)
		cancel()
		if err != nil {
			log.Printf("[Seed] 导入 %s 失败: %v", imdbID, err)
			continue
		}
		movies = append(movies, movie)
		log.Printf("[Seed] 已导入 %s (%d)", movie.Title, movie.Year)
	}

	// 全部抓取失败时使用内置兜底数据
	if len(movies) == 0 {
		log.Println("[Seed] OMDb 导入全部失败，使用内置兜底数据")
		movies = seedFallbackMovies(repos)
	}
	log.Printf("[Seed] 已创建 %d 部电影", len(movies))

	// 种子评分
	ratingsData := []struct{ User, Movie, Score int }{
		{0, 0, 5}, {0, 1, 5}, {0, 2, 4},
		{1, 0, 4}, {1, 3, 5}, {1, 4, 5},
		{2, 1, 5}, {2, 2, 5}, {2, 4, 4},
	}
	ratingCount := 0
	for _, rd := range ratingsData {
		if rd.User >= len(users) || rd.Movie >= len(movies) {
			continue
		}
		rating := &model.Rating{
			UserID:  users[rd.User].ID,
			MovieID: movies[rd.Movie].ID,
			Score:   rd.Score,
		}
		if err := repos.Rating.Upsert(rating); err != nil {
			log.Printf("[Seed] 创建评分失败: %v", err)
			continue
		}
		ratingCount++
	}
	log.Printf("[Seed] 已创建 %d 条评分", ratingCount)

	// 种子评论
	commentsData := []struct {
		User, Movie int
		Content     string
	}{
		{0, 0, "绝对的杰作！特效彻底革新了电影工业。"},
		{1, 0, "难以置信的电影，看了五遍还能发现新东西。"},
		{0, 1, "有史以来最好的剧情片之一，非常感人。"},
		{2, 1, "摩根·弗里曼和蒂姆·罗宾斯的表演堪称完美。"},
		{1, 3, "希斯·莱杰贡献了影史最佳小丑！"},
		{2, 4, "视觉震撼，关于爱与时间的深刻故事。"},
	}
	commentCount := 0
	for _, cd := range commentsData {
		if cd.User >= len(users) || cd.Movie >= len(movies) {
			continue
		}
		comment := &model.Comment{
			UserID:  users[cd.User].ID,
			MovieID: movies[cd.Movie].ID,
			Content: cd.Content,
		}
		if err := repos.Comment.Create(comment); err != nil {
			log.Printf("[Seed] 创建评论失败: %v", err)
			continue
		}
		commentCount++
	}
	log.Printf("[Seed] 已创建 %d 条评论", commentCount)

	// 种子待看清单
	watchlistData := []struct {
		User, Movie int
		Status      string
	}{
		{0, 3, model.WatchStatusToWatch},
		{0, 4, model.WatchStatusToWatch},
		{1, 1, model.WatchStatusWatched},
		{1, 2, model.WatchStatusToWatch},
		{2, 0, model.WatchStatusWatched},
		{2, 3, model.WatchStatusWatching},
	}
	watchlistCount := 0
	for _, wd := range watchlistData {
		if wd.User >= len(users) || wd.Movie >= len(movies) {
			continue
		}
		item := &model.WatchlistItem{
			UserID:  users[wd.User].ID,
			MovieID: movies[wd.Movie].ID,
			Status:  wd.Status,
		}
		if err := repos.Watchlist.Upsert(item); err != nil {
			log.Printf("[Seed] 创建待看条目失败: %v", err)
			continue
		}
		watchlistCount++
	}
	log.Printf("[Seed] 已创建 %d 条待看条目", watchlistCount)

	log.Println("[Seed] 数据库初始化完成")
	log.Println("[Seed] 测试账号: alice / bob / charlie，密码均为 password123")
}

// seedFallbackMovies 外部数据源不可用时的兜底电影数据
func seedFallbackMovies(repos *repository.Repositories) []*model.Movie {
	fallback := []*model.Movie{
		{
			IMDbID:    "tt0133093",
			Title:     "The Matrix",
			Year:      1999,
			PosterURL: "https://m.media-amazon.com/images/M/MV5BNzQzOTk3OTAtNDQ0Zi00ZTVkLWI0MTEtMDllZjNkYzNjNTc4L2ltYWdlXkEyXkFqcGdeQXVyNjU0OTQ0OTY@._V1_SX300.jpg",
			Plot:      "一名黑客发现了他所处现实的真相，以及他在对抗控制者的战争中的角色。",
			Genres:    pq.StringArray{"Action", "Sci-Fi"},
		},
		{
			IMDbID:    "tt0111161",
			Title:     "The Shawshank Redemption",
			Year:      1994,
			PosterURL: "https://m.media-amazon.com/images/M/MV5BNDE3ODcxYzMtY2YzZC00NmNlLWJiNDMtZDViZWM2MzIxZDYwXkEyXkFqcGdeQXVyNjAwNDUxODI@._V1_SX300.jpg",
			Plot:      "两名被囚禁的男人在多年间结下深厚的友谊。",
			Genres:    pq.StringArray{"Drama"},
		},
		{
			IMDbID:    "tt0068646",
			Title:     "The Godfather",
			Year:      1972,
			PosterURL: "https://m.media-amazon.com/images/M/MV5BM2MyNjYxNmUtYTAwNi00MTYxLWJmNWYtYzZlODY3ZTk3OTFlXkEyXkFqcGdeQXVyNzkwMjQ5NzM@._V1_SX300.jpg",
			Plot:      "黑手党家族年迈的族长将帝国的控制权移交给不情愿的儿子。",
			Genres:    pq.StringArray{"Crime", "Drama"},
		},
		{
			IMDbID:    "tt0468569",
			Title:     "The Dark Knight",
			Year:      2008,
			PosterURL: "https://m.media-amazon.com/images/M/MV5BMTMxNTMwODM0NF5BMl5BanBnXkFtZTcwODAyMTk2Mw@@._V1_SX300.jpg",
			Plot:      "当小丑在哥谭市制造混乱时，蝙蝠侠必须接受最严峻的心理考验。",
			Genres:    pq.StringArray{"Action", "Crime", "Drama"},
		},
		{
			IMDbID:    "tt0816692",
			Title:     "Interstellar",
			Year:      2014,
			PosterURL: "https://m.media-amazon.com/images/M/MV5BZjdkOTU3MDktN2IxOS00OGEyLWFmMjktY2FiMmZkNWIyODZiXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_SX300.jpg",
			Plot:      "一队探险者穿越虫洞，为人类的存续寻找出路。",
			Genres:    pq.StringArray{"Adventure", "Drama", "Sci-Fi"},
		},
	}

	movies := make([]*model.Movie, 0, len(fallback))
	for _, movie := range fallback {
		if err := repos.Movie.Create(movie); err != nil {
			log.Printf("[Seed] 创建兜底电影 %s 失败: %v", movie.Title, err)
			continue
		}
		movies = append(movies, movie)
	}
	return movies
}
