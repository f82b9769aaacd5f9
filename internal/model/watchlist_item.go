package model

// WatchlistItem represents a row in the `watchlists` table. It links a
// user to a movie in one of the external catalogs. MovieAPIID is the
// opaque identifier used by that catalog (an IMDb id such as
// "tt0111161" or a numeric TMDB id); it is stored verbatim and never
// validated against the catalog. The pair (UserID, MovieAPIID) is
// unique: a user cannot list the same external movie twice.
type WatchlistItem struct {
	ID         uint64 // watchlists.id
	UserID     uint64 // watchlists.user_id
	MovieAPIID string // watchlists.movie_api_id
}
