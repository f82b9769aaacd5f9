// Package provider talks to the two external movie catalogs: OMDb and
// TMDB. The two upstreams signal success and failure through
// structurally different envelopes — OMDb carries an explicit
// Response:"True"/"False" flag plus an Error string, TMDB signals
// success by the presence of a results field. This package collapses
// both into one set of result and error types so that no caller ever
// branches on a provider-specific shape.
//
// Every call is a single forwarded upstream request: no retry, no
// caching, no timeout beyond the HTTP client default. A slow upstream
// blocks only the request that issued it.
package provider

import (
	"fmt"
	"net/http"
	"time"
)

// Input validation sentinels. These are raised before any upstream
// request is made and map to HTTP 400.
var (
	ErrMissingTitle    = fmt.Errorf("movie title is required")
	ErrMissingGenreID  = fmt.Errorf("genre id is required")
	ErrMissingID       = fmt.Errorf("movie id is required")
	ErrUnknownIDFormat = fmt.Errorf("movie id is neither an imdb id nor a tmdb id")
)

// NotFoundError reports that the upstream answered but found no match.
// Message carries the upstream's own error text (e.g. OMDb's "Movie
// not found!") so handlers can surface it to the client.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// UpstreamError reports a transport failure or a malformed upstream
// payload. Provider names the catalog that failed.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// defaultHTTPClient builds the transport used when the caller does not
// inject one. 15 seconds is the only timeout applied to upstream calls.
func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}
