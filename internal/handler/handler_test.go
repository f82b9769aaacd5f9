package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-watchlist/internal/config"
	"github.com/iliyamo/movie-watchlist/internal/handler"
	"github.com/iliyamo/movie-watchlist/internal/provider"
	"github.com/iliyamo/movie-watchlist/internal/router"
)

const testJWTSecret = "handler-test-secret"

// testApp is a fully wired Echo application backed by in-memory
// stores. The provider gateway is constructed but never reached by
// these tests; its behavior is covered in the provider package.
type testApp struct {
	e     *echo.Echo
	users *memUserStore
	items *memWatchlistStore
}

func newTestApp() *testApp {
	return newTestAppWithGateway(provider.NewGateway(
		provider.NewOMDbClient("test", nil),
		provider.NewTMDBClient("test", nil),
	))
}

func newTestAppWithGateway(gateway *provider.Gateway) *testApp {
	cfg := config.Config{
		JWTSecret:    testJWTSecret,
		AccessTTLMin: 60,
		BcryptCost:   4, // low cost keeps the tests fast
	}
	users := newMemUserStore()
	items := newMemWatchlistStore()

	e := echo.New()
	router.RegisterRoutes(e, cfg, config.RateLimitConfig{}, nil,
		handler.NewAuthHandler(cfg, users),
		handler.NewMovieHandler(gateway),
		handler.NewWatchlistHandler(cfg, items),
	)
	return &testApp{e: e, users: users, items: items}
}

// do issues a request against the app. A non-empty token is attached
// as a bearer credential.
func (a *testApp) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// register creates a user and returns nothing; it fails the test on a
// non-201 response.
func (a *testApp) register(t *testing.T, username, email, password string) {
	t.Helper()
	rec := a.do(http.MethodPost, "/api/users/register",
		`{"username":"`+username+`","email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

// login authenticates and returns the issued token.
func (a *testApp) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := a.do(http.MethodPost, "/api/users/login",
		`{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}
