package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-watchlist/internal/model"
)

// WatchlistRepo provides access to rows of the 'watchlists' table.
// Every operation is a single statement; the unique index on
// (user_id, movie_api_id) is the only concurrency control needed.
type WatchlistRepo struct{ DB *sql.DB }

func NewWatchlistRepo(db *sql.DB) *WatchlistRepo { return &WatchlistRepo{DB: db} }

// Add inserts a watchlist row and returns its ID. Adding a movie the
// user already listed is reported as ErrAlreadyInWatchlist.
func (r *WatchlistRepo) Add(ctx context.Context, userID uint64, movieAPIID string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO watchlists (user_id, movie_api_id) VALUES (?,?)",
		userID, movieAPIID)
	if err != nil {
		return 0, translateDuplicate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Remove deletes a watchlist row by id and reports whether a row was
// actually deleted. Ownership is checked by the caller via GetByID
// before invocation.
func (r *WatchlistRepo) Remove(ctx context.Context, id uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM watchlists WHERE id=?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByUser returns the user's watchlist entries in storage order.
// An empty watchlist yields an empty slice, not nil-row errors.
func (r *WatchlistRepo) ListByUser(ctx context.Context, userID uint64) ([]model.WatchlistItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, movie_api_id FROM watchlists WHERE user_id=?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.WatchlistItem, 0)
	for rows.Next() {
		var it model.WatchlistItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.MovieAPIID); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID fetches a single watchlist entry. It exists to resolve the
// entry's owner before a Remove: ownership cannot be checked against a
// row that was never loaded.
func (r *WatchlistRepo) GetByID(ctx context.Context, id uint64) (model.WatchlistItem, error) {
	var it model.WatchlistItem
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, movie_api_id FROM watchlists WHERE id=? LIMIT 1",
		id).Scan(&it.ID, &it.UserID, &it.MovieAPIID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.WatchlistItem{}, ErrNotFound
	}
	return it, err
}
