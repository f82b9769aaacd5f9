package provider

import (
	"io"
	"net/http"
	"strings"
)

// roundTripFunc lets a test stand in for both upstream catalogs
// without opening a socket.
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func clientWith(rt roundTripFunc) *http.Client {
	return &http.Client{Transport: rt}
}
