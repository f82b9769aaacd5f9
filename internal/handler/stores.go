package handler

import (
	"context"

	"github.com/iliyamo/movie-watchlist/internal/model"
	"github.com/iliyamo/movie-watchlist/internal/repository"
)

// UserStore is the storage capability set the identity handlers need.
// It is implemented by repository.UserRepo against MySQL and by an
// in-memory fake in the handler tests.
type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	Update(ctx context.Context, id uint64, upd repository.UserUpdate) (bool, error)
}

// WatchlistStore is the storage capability set the watchlist handlers
// need. Implemented by repository.WatchlistRepo and by a test fake.
type WatchlistStore interface {
	Add(ctx context.Context, userID uint64, movieAPIID string) (uint64, error)
	Remove(ctx context.Context, id uint64) (bool, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.WatchlistItem, error)
	GetByID(ctx context.Context, id uint64) (model.WatchlistItem, error)
}
