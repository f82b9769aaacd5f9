package provider

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTMDBGenres(t *testing.T) {
	httpc := clientWith(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/3/genre/movie/list", req.URL.Path)
		assert.Contains(t, req.URL.RawQuery, "api_key=k")
		return jsonResponse(http.StatusOK, `{"genres":[{"id":28,"name":"Action"},{"id":35,"name":"Comedy"}]}`), nil
	})

	c := NewTMDBClient("k", httpc)
	got, err := c.Genres(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Genre{ID: 28, Name: "Action"}, got[0])
}

func TestTMDBGenresMissingFieldIsUpstreamError(t *testing.T) {
	httpc := clientWith(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"something_else":true}`), nil
	})

	c := NewTMDBClient("k", httpc)
	_, err := c.Genres(context.Background())

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "tmdb", ue.Provider)
}

func TestTMDBDiscoverByGenre(t *testing.T) {
	var gotQuery string
	httpc := clientWith(func(req *http.Request) (*http.Response, error) {
		gotQuery = req.URL.RawQuery
		return jsonResponse(http.StatusOK, `{
			"page": 2,
			"total_pages": 10,
			"total_results": 200,
			"results": [{"id": 550, "title": "Fight Club"}]
		}`), nil
	})

	c := NewTMDBClient("k", httpc)
	page, err := c.Discover(context.Background(), "18", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.TotalPages)
	assert.Equal(t, 200, page.TotalResults)
	require.Len(t, page.Results, 1)
	assert.Contains(t, gotQuery, "with_genres=18")
	assert.Contains(t, gotQuery, "page=2")
}

func TestTMDBDiscoverDefaultsPageToOne(t *testing.T) {
	var gotQuery string
	httpc := clientWith(func(req *http.Request) (*http.Response, error) {
		gotQuery = req.URL.RawQuery
		return jsonResponse(http.StatusOK, `{"page":1,"total_pages":1,"total_results":0,"results":[]}`), nil
	})

	c := NewTMDBClient("k", httpc)
	_, err := c.Discover(context.Background(), "18", 0)
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "page=1")
}

func TestTMDBDiscoverMissingResultsIsNotFound(t *testing.T) {
	httpc := clientWith(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"page":1,"total_pages":0}`), nil
	})

	c := NewTMDBClient("k", httpc)
	_, err := c.Discover(context.Background(), "9999", 1)

	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestTMDBDetailsNotFoundCarriesStatusMessage(t *testing.T) {
	httpc := clientWith(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"status_code":34,"status_message":"The resource you requested could not be found."}`), nil
	})

	c := NewTMDBClient("k", httpc)
	_, err := c.Details(context.Background(), "99999999")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "The resource you requested could not be found.", nf.Message)
}

func TestTMDBDetailsPassesRecordThrough(t *testing.T) {
	const payload = `{"id":550,"title":"Fight Club","genres":[{"id":18,"name":"Drama"}]}`
	httpc := clientWith(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/3/movie/550", req.URL.Path)
		return jsonResponse(http.StatusOK, payload), nil
	})

	c := NewTMDBClient("k", httpc)
	raw, err := c.Details(context.Background(), "550")
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(raw))
}
