package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/movie-watchlist/internal/config"
	"github.com/iliyamo/movie-watchlist/internal/database"
	"github.com/iliyamo/movie-watchlist/internal/handler"
	"github.com/iliyamo/movie-watchlist/internal/provider"
	"github.com/iliyamo/movie-watchlist/internal/repository"
	"github.com/iliyamo/movie-watchlist/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env directly

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Provider gateway over the two external catalogs. API keys come
	// from the config object; nothing below reads the environment.
	gateway := provider.NewGateway(
		provider.NewOMDbClient(cfg.OMDbAPIKey, nil),
		provider.NewTMDBClient(cfg.TMDBAPIKey, nil),
	)

	rdb := config.NewRedisClient(cfg) // nil disables the login limiter
	if rdb == nil {
		log.Println("redis unavailable, login rate limiting disabled")
	}

	authHandler := handler.NewAuthHandler(cfg, repository.NewUserRepo(db))
	movieHandler := handler.NewMovieHandler(gateway)
	watchlistHandler := handler.NewWatchlistHandler(cfg, repository.NewWatchlistRepo(db))

	e := echo.New()
	router.RegisterRoutes(e, cfg, config.LoadRateLimitConfig(), rdb, authHandler, movieHandler, watchlistHandler)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
