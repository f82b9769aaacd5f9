package provider

import (
	"context"
	"encoding/json"
	"strings"
)

// Hint tells the gateway which catalog an external id belongs to. With
// HintAuto the gateway routes by the id's shape: IMDb-style ids carry
// a "tt" prefix, TMDB ids are purely numeric.
type Hint int

const (
	HintAuto Hint = iota
	HintOMDb
	HintTMDB
)

// Gateway is the single entry point to both catalogs. It owns no
// state beyond the two clients and performs all input validation
// before any upstream request leaves the process.
type Gateway struct {
	omdb *OMDbClient
	tmdb *TMDBClient
}

// NewGateway bundles the two provider clients.
func NewGateway(omdb *OMDbClient, tmdb *TMDBClient) *Gateway {
	return &Gateway{omdb: omdb, tmdb: tmdb}
}

// SearchByTitle searches OMDb by free-text title. An empty title is
// rejected before any upstream call is made.
func (g *Gateway) SearchByTitle(ctx context.Context, title string) ([]MovieSummary, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrMissingTitle
	}
	return g.omdb.Search(ctx, title)
}

// ListGenres returns TMDB's movie genre taxonomy.
func (g *Gateway) ListGenres(ctx context.Context) ([]Genre, error) {
	return g.tmdb.Genres(ctx)
}

// DiscoverByGenre returns one page of TMDB movies for a genre id. The
// page defaults to 1 when absent or non-positive.
func (g *Gateway) DiscoverByGenre(ctx context.Context, genreID string, page int) (DiscoverPage, error) {
	if strings.TrimSpace(genreID) == "" {
		return DiscoverPage{}, ErrMissingGenreID
	}
	return g.tmdb.Discover(ctx, genreID, page)
}

// DetailsByExternalID fetches a single record from whichever catalog
// the id belongs to. The hint short-circuits routing when the caller
// already knows the provider (the details routes are per-provider);
// HintAuto falls back to the id's shape.
func (g *Gateway) DetailsByExternalID(ctx context.Context, id string, hint Hint) (json.RawMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingID
	}
	switch hint {
	case HintOMDb:
		return g.omdb.Details(ctx, id)
	case HintTMDB:
		return g.tmdb.Details(ctx, id)
	}
	if strings.HasPrefix(id, "tt") {
		return g.omdb.Details(ctx, id)
	}
	if isDigits(id) {
		return g.tmdb.Details(ctx, id)
	}
	return nil, ErrUnknownIDFormat
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
