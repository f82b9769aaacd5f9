package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const omdbBaseURL = "http://www.omdbapi.com/"

// OMDbClient queries the OMDb catalog (Provider A). OMDb reports
// success through an explicit envelope: Response is the string "True"
// or "False", and on "False" the Error field carries a human-readable
// reason. Lookups are by free-text title or by IMDb-style id
// ("tt"-prefixed).
type OMDbClient struct {
	apiKey string
	httpc  *http.Client
}

// NewOMDbClient returns a client authenticated with the given API key.
// httpc may be nil, in which case a default client with a 15 second
// timeout is used.
func NewOMDbClient(apiKey string, httpc *http.Client) *OMDbClient {
	if httpc == nil {
		httpc = defaultHTTPClient()
	}
	return &OMDbClient{apiKey: strings.TrimSpace(apiKey), httpc: httpc}
}

// MovieSummary is one result of an OMDb title search.
type MovieSummary struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDBID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// omdbEnvelope is the portion of every OMDb response needed to decide
// success. The remaining fields differ between search and details
// responses and are decoded separately.
type omdbEnvelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Search performs a title search and returns the matching summaries.
// A "False" response becomes a NotFoundError carrying OMDb's message.
func (c *OMDbClient) Search(ctx context.Context, title string) ([]MovieSummary, error) {
	body, err := c.get(ctx, url.Values{"s": {title}})
	if err != nil {
		return nil, err
	}
	var out struct {
		omdbEnvelope
		Search []MovieSummary `json:"Search"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &UpstreamError{Provider: "omdb", Err: err}
	}
	if out.Response != "True" {
		return nil, &NotFoundError{Message: notFoundMessage(out.Error, "Movie not found.")}
	}
	return out.Search, nil
}

// Details fetches a single movie by IMDb id. The upstream record is
// returned verbatim as raw JSON; OMDb already shapes it as one object.
func (c *OMDbClient) Details(ctx context.Context, imdbID string) (json.RawMessage, error) {
	body, err := c.get(ctx, url.Values{"i": {imdbID}})
	if err != nil {
		return nil, err
	}
	var env omdbEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &UpstreamError{Provider: "omdb", Err: err}
	}
	if env.Response != "True" {
		return nil, &NotFoundError{Message: notFoundMessage(env.Error, "Movie details not found on OMDB.")}
	}
	return json.RawMessage(body), nil
}

// get issues one GET against OMDb with the api key appended. Transport
// failures and unreadable bodies surface as UpstreamError.
func (c *OMDbClient) get(ctx context.Context, q url.Values) ([]byte, error) {
	q.Set("apikey", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, omdbBaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &UpstreamError{Provider: "omdb", Err: err}
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &UpstreamError{Provider: "omdb", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Provider: "omdb", Err: err}
	}
	return body, nil
}

// notFoundMessage prefers the upstream's own error text over the
// fallback used when the envelope omitted it.
func notFoundMessage(upstream, fallback string) string {
	if upstream != "" {
		return upstream
	}
	return fallback
}
