package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-watchlist/internal/provider"
)

// MovieHandler forwards catalog queries through the provider gateway.
// It holds no state of its own: every request is a single live
// upstream call whose normalized result or typed error is mapped to a
// response here, so no code above the gateway ever inspects a
// provider-specific envelope.
type MovieHandler struct {
	Gateway *provider.Gateway
}

func NewMovieHandler(gw *provider.Gateway) *MovieHandler {
	return &MovieHandler{Gateway: gw}
}

// Search handles GET /api/external-movies/search?title=
func (h *MovieHandler) Search(c echo.Context) error {
	results, err := h.Gateway.SearchByTitle(c.Request().Context(), c.QueryParam("title"))
	if err != nil {
		return h.movieError(c, err, "server error while fetching movie data")
	}
	return c.JSON(http.StatusOK, results)
}

// Genres handles GET /api/external-movies/genres
func (h *MovieHandler) Genres(c echo.Context) error {
	genres, err := h.Gateway.ListGenres(c.Request().Context())
	if err != nil {
		return h.movieError(c, err, "server error while fetching movie genres")
	}
	return c.JSON(http.StatusOK, genres)
}

// Discover handles GET /api/external-movies/discover?genre_id=&page=
func (h *MovieHandler) Discover(c echo.Context) error {
	// Page defaults to 1 when absent or non-numeric.
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	result, err := h.Gateway.DiscoverByGenre(c.Request().Context(), c.QueryParam("genre_id"), page)
	if err != nil {
		return h.movieError(c, err, "server error while discovering movie data by genre")
	}
	return c.JSON(http.StatusOK, result)
}

// DetailsOMDb handles GET /api/external-movies/details/omdb/:imdbId
func (h *MovieHandler) DetailsOMDb(c echo.Context) error {
	raw, err := h.Gateway.DetailsByExternalID(c.Request().Context(), c.Param("imdbId"), provider.HintOMDb)
	if err != nil {
		return h.movieError(c, err, "server error while fetching movie details")
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// DetailsTMDB handles GET /api/external-movies/details/tmdb/:tmdbId
func (h *MovieHandler) DetailsTMDB(c echo.Context) error {
	raw, err := h.Gateway.DetailsByExternalID(c.Request().Context(), c.Param("tmdbId"), provider.HintTMDB)
	if err != nil {
		return h.movieError(c, err, "server error while fetching movie details")
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// movieError translates the gateway's typed errors into responses:
// input sentinels -> 400, upstream misses -> 404 with the upstream's
// message, anything else -> 500, logged server-side with no internal
// detail leaked to the caller.
func (h *MovieHandler) movieError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, provider.ErrMissingTitle),
		errors.Is(err, provider.ErrMissingGenreID),
		errors.Is(err, provider.ErrMissingID),
		errors.Is(err, provider.ErrUnknownIDFormat):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var nf *provider.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Message})
	}
	c.Logger().Errorf("provider gateway: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
}
