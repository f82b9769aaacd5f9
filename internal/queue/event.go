// Package queue defines message payloads exchanged over the message broker.
package queue

// WatchlistAddedEvent is published after a movie is successfully added
// to a user's watchlist. It contains enough information for downstream
// consumers to log, notify, or feed recommendations without querying
// the primary database.
type WatchlistAddedEvent struct {
	WatchlistID uint64 `json:"watchlist_id"`
	UserID      uint64 `json:"user_id"`
	MovieAPIID  string `json:"movie_api_id"`
	AddedAt     string `json:"added_at"`
}
