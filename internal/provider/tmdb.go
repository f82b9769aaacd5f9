package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const tmdbBaseURL = "https://api.themoviedb.org/3"

// TMDBClient queries the TMDB catalog (Provider B). TMDB has no
// explicit success flag: a well-formed answer is recognized by the
// presence of the expected field (genres, results), and misses on the
// details endpoint arrive as an HTTP 404 with a status_message body.
type TMDBClient struct {
	apiKey string
	httpc  *http.Client
}

// NewTMDBClient returns a client authenticated with the given API key.
// httpc may be nil, in which case a default client with a 15 second
// timeout is used.
func NewTMDBClient(apiKey string, httpc *http.Client) *TMDBClient {
	if httpc == nil {
		httpc = defaultHTTPClient()
	}
	return &TMDBClient{apiKey: strings.TrimSpace(apiKey), httpc: httpc}
}

// Genre is one entry of TMDB's movie genre taxonomy.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DiscoverPage is one page of genre-filtered discovery results. The
// individual records pass through as raw JSON, shaped by TMDB.
type DiscoverPage struct {
	Page         int               `json:"page"`
	TotalPages   int               `json:"total_pages"`
	TotalResults int               `json:"total_results"`
	Results      []json.RawMessage `json:"results"`
}

// Genres fetches the movie genre taxonomy. A payload without a genres
// collection is treated as malformed.
func (c *TMDBClient) Genres(ctx context.Context) ([]Genre, error) {
	body, status, err := c.get(ctx, "/genre/movie/list", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &UpstreamError{Provider: "tmdb", Err: fmt.Errorf("status %d", status)}
	}
	var out struct {
		Genres *[]Genre `json:"genres"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &UpstreamError{Provider: "tmdb", Err: err}
	}
	// Field presence is the success signal here.
	if out.Genres == nil {
		return nil, &UpstreamError{Provider: "tmdb", Err: fmt.Errorf("response lacks genres field")}
	}
	return *out.Genres, nil
}

// Discover fetches one page of movies matching a genre id. A payload
// without a results field means the upstream found nothing.
func (c *TMDBClient) Discover(ctx context.Context, genreID string, page int) (DiscoverPage, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{
		"with_genres": {genreID},
		"page":        {fmt.Sprint(page)},
	}
	body, status, err := c.get(ctx, "/discover/movie", q)
	if err != nil {
		return DiscoverPage{}, err
	}
	if status >= http.StatusInternalServerError {
		return DiscoverPage{}, &UpstreamError{Provider: "tmdb", Err: fmt.Errorf("status %d", status)}
	}
	var out struct {
		Page         int                `json:"page"`
		TotalPages   int                `json:"total_pages"`
		TotalResults int                `json:"total_results"`
		Results      *[]json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return DiscoverPage{}, &UpstreamError{Provider: "tmdb", Err: err}
	}
	if out.Results == nil {
		return DiscoverPage{}, &NotFoundError{Message: "No movies found for the specified genre."}
	}
	return DiscoverPage{
		Page:         out.Page,
		TotalPages:   out.TotalPages,
		TotalResults: out.TotalResults,
		Results:      *out.Results,
	}, nil
}

// Details fetches a single movie by numeric TMDB id, returned verbatim
// as raw JSON. A 404 from the upstream becomes a NotFoundError with
// TMDB's status_message.
func (c *TMDBClient) Details(ctx context.Context, tmdbID string) (json.RawMessage, error) {
	body, status, err := c.get(ctx, "/movie/"+url.PathEscape(tmdbID), nil)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		var out struct {
			StatusMessage string `json:"status_message"`
		}
		_ = json.Unmarshal(body, &out)
		return nil, &NotFoundError{Message: notFoundMessage(out.StatusMessage, "Movie details not found on TMDB.")}
	case status != http.StatusOK:
		return nil, &UpstreamError{Provider: "tmdb", Err: fmt.Errorf("status %d", status)}
	}
	if !json.Valid(body) {
		return nil, &UpstreamError{Provider: "tmdb", Err: fmt.Errorf("invalid json payload")}
	}
	return json.RawMessage(body), nil
}

// get issues one GET against TMDB with the api key appended and
// returns the body and status code. Transport failures surface as
// UpstreamError; status handling is left to the caller because the
// endpoints disagree on what a non-200 means.
func (c *TMDBClient) get(ctx context.Context, endpoint string, q url.Values) ([]byte, int, error) {
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tmdbBaseURL+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, 0, &UpstreamError{Provider: "tmdb", Err: err}
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, &UpstreamError{Provider: "tmdb", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &UpstreamError{Provider: "tmdb", Err: err}
	}
	return body, resp.StatusCode, nil
}
