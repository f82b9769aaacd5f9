package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movie-watchlist/internal/config"
	"github.com/iliyamo/movie-watchlist/internal/handler"
	"github.com/iliyamo/movie-watchlist/internal/middleware"
)

// RegisterRoutes wires every endpoint of the API onto the provided
// Echo instance. Registration, login and the health check are open;
// everything else sits behind the JWTAuth middleware, so a missing or
// invalid bearer token yields 401 before any handler logic runs.
// Login additionally passes through the redis-backed attempt limiter
// (a nil redis client disables it).
func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	rlCfg config.RateLimitConfig,
	rdb *redis.Client,
	auth *handler.AuthHandler,
	movies *handler.MovieHandler,
	watchlist *handler.WatchlistHandler,
) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	jwtAuth := middleware.JWTAuth(cfg.JWTSecret)

	// Identity: register and login are unauthenticated, profile
	// endpoints require a bearer token and are owner-only.
	users := e.Group("/api/users")
	users.POST("/register", auth.Register)
	users.POST("/login", auth.Login, middleware.LoginRateLimit(rlCfg, rdb))
	users.GET("/:userId", auth.Profile, jwtAuth)
	users.PUT("/:userId", auth.UpdateProfile, jwtAuth)

	// External catalogs: all routes forward live requests through the
	// provider gateway and require authentication.
	external := e.Group("/api/external-movies", jwtAuth)
	external.GET("/search", movies.Search)
	external.GET("/genres", movies.Genres)
	external.GET("/discover", movies.Discover)
	external.GET("/details/omdb/:imdbId", movies.DetailsOMDb)
	external.GET("/details/tmdb/:tmdbId", movies.DetailsTMDB)

	// Watchlist: owner-only resource operations.
	wl := e.Group("/api/watchlist", jwtAuth)
	wl.POST("", watchlist.Add)
	wl.GET("/users/:userId", watchlist.ListByUser)
	wl.DELETE("/:watchlistId", watchlist.Remove)
}
