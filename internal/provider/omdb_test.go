package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOMDbSearchSuccess(t *testing.T) {
	var gotURL string
	httpc := clientWith(func(req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()
		return jsonResponse(http.StatusOK, `{
			"Response": "True",
			"Search": [
				{"Title":"The Shawshank Redemption","Year":"1994","imdbID":"tt0111161","Type":"movie","Poster":"N/A"}
			]
		}`), nil
	})

	c := NewOMDbClient("k", httpc)
	got, err := c.Search(context.Background(), "shawshank")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tt0111161", got[0].IMDBID)
	assert.Equal(t, "The Shawshank Redemption", got[0].Title)
	assert.Contains(t, gotURL, "s=shawshank")
	assert.Contains(t, gotURL, "apikey=k")
}

func TestOMDbSearchNotFoundSurfacesUpstreamMessage(t *testing.T) {
	httpc := clientWith(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"Response":"False","Error":"Movie not found!"}`), nil
	})

	c := NewOMDbClient("k", httpc)
	_, err := c.Search(context.Background(), "NoSuchMovieXYZ")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Movie not found!", nf.Message)
}

func TestOMDbSearchTransportFailure(t *testing.T) {
	httpc := clientWith(func(req *http.Request) (*http.Response, error) {
		return nil, fmt.Errorf("connection refused")
	})

	c := NewOMDbClient("k", httpc)
	_, err := c.Search(context.Background(), "anything")

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "omdb", ue.Provider)
}

func TestOMDbSearchMalformedPayload(t *testing.T) {
	httpc := clientWith(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `<html>not json</html>`), nil
	})

	c := NewOMDbClient("k", httpc)
	_, err := c.Search(context.Background(), "anything")

	var ue *UpstreamError
	assert.ErrorAs(t, err, &ue)
}

func TestOMDbDetailsPassesRecordThrough(t *testing.T) {
	const payload = `{"Response":"True","Title":"The Shawshank Redemption","imdbID":"tt0111161","Ratings":[{"Source":"Internet Movie Database","Value":"9.3/10"}]}`
	httpc := clientWith(func(req *http.Request) (*http.Response, error) {
		assert.Contains(t, req.URL.RawQuery, "i=tt0111161")
		return jsonResponse(http.StatusOK, payload), nil
	})

	c := NewOMDbClient("k", httpc)
	raw, err := c.Details(context.Background(), "tt0111161")
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(raw))
}

func TestOMDbDetailsNotFound(t *testing.T) {
	httpc := clientWith(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"Response":"False","Error":"Incorrect IMDb ID."}`), nil
	})

	c := NewOMDbClient("k", httpc)
	_, err := c.Details(context.Background(), "tt0000000")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Incorrect IMDb ID.", nf.Message)
}

func TestGatewaySearchRejectsEmptyTitleBeforeUpstream(t *testing.T) {
	calls := 0
	httpc := clientWith(func(req *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, `{"Response":"True","Search":[]}`), nil
	})

	g := NewGateway(NewOMDbClient("k", httpc), NewTMDBClient("k", httpc))
	_, err := g.SearchByTitle(context.Background(), "   ")

	assert.True(t, errors.Is(err, ErrMissingTitle))
	assert.Zero(t, calls, "no upstream request may be made for an empty title")
}
