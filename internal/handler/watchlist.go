package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-watchlist/internal/config"
	"github.com/iliyamo/movie-watchlist/internal/middleware"
	"github.com/iliyamo/movie-watchlist/internal/queue"
	"github.com/iliyamo/movie-watchlist/internal/repository"
	queue_publisher "github.com/iliyamo/movie-watchlist/internal/service"
)

// WatchlistHandler implements the per-user watchlist endpoints. Every
// mutating operation is guarded by ownership: the caller identity from
// the verified token must equal the entry's owner, which is always
// loaded fresh from storage rather than trusted from client input.
type WatchlistHandler struct {
	Cfg   config.Config
	Items WatchlistStore
}

func NewWatchlistHandler(cfg config.Config, items WatchlistStore) *WatchlistHandler {
	return &WatchlistHandler{Cfg: cfg, Items: items}
}

type addReq struct {
	// The external id is opaque: OMDb ids are strings ("tt0111161"),
	// TMDB ids are numbers (550). Both JSON forms are accepted.
	MovieAPIID interface{} `json:"movie_api_id"`
}

type watchlistItemResp struct {
	ID         uint64 `json:"id"`
	MovieAPIID string `json:"movie_api_id"`
}

// Add handles POST /api/watchlist.
func (h *WatchlistHandler) Add(c echo.Context) error {
	var req addReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	movieID := normalizeExternalID(req.MovieAPIID)
	if movieID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie id is required"})
	}
	userID := middleware.CallerID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Items.Add(ctx, userID, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyInWatchlist) || errors.Is(err, repository.ErrDuplicateEntry) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie already in watchlist for this user"})
		}
		c.Logger().Errorf("watchlist add: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error adding movie to watchlist"})
	}

	// Downstream consumers (notifications, recommendations) learn about
	// the addition over the broker; a publish failure never fails the
	// request.
	_ = queue_publisher.PublishWatchlistAdded(ctx, h.Cfg.RabbitURL, queue.WatchlistAddedEvent{
		WatchlistID: id,
		UserID:      userID,
		MovieAPIID:  movieID,
		AddedAt:     time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message":     "movie added to watchlist successfully",
		"watchlistId": id,
	})
}

// ListByUser handles GET /api/watchlist/users/:userId.
func (h *WatchlistHandler) ListByUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if id != middleware.CallerID(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only view your own watchlist"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Items.ListByUser(ctx, id)
	if err != nil {
		c.Logger().Errorf("watchlist list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error fetching watchlist"})
	}

	out := make([]watchlistItemResp, 0, len(items))
	for _, it := range items {
		out = append(out, watchlistItemResp{ID: it.ID, MovieAPIID: it.MovieAPIID})
	}
	return c.JSON(http.StatusOK, out)
}

// Remove handles DELETE /api/watchlist/:watchlistId. The entry is
// fetched by its own id first: ownership cannot be checked against a
// nonexistent resource.
func (h *WatchlistHandler) Remove(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("watchlistId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid watchlist id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item, err := h.Items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "watchlist item not found"})
		}
		c.Logger().Errorf("watchlist get: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error removing movie from watchlist"})
	}
	if item.UserID != middleware.CallerID(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only remove items from your own watchlist"})
	}

	deleted, err := h.Items.Remove(ctx, id)
	if err != nil {
		c.Logger().Errorf("watchlist remove: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error removing movie from watchlist"})
	}
	if !deleted {
		// The row vanished between the ownership check and the delete.
		return c.JSON(http.StatusNotFound, echo.Map{"error": "watchlist item not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "movie removed from watchlist successfully"})
}

// normalizeExternalID flattens the accepted JSON forms of an external
// movie id into a string.
func normalizeExternalID(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}
