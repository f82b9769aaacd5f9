// Package repository persists users and watchlist entries in MySQL. It
// defines sentinel error values that are reused across repositories so
// that higher layers such as handlers can distinguish failure
// scenarios without inspecting driver-specific errors. Uniqueness
// races (two requests registering the same username, or adding the
// same movie twice) are resolved solely by the database's unique
// constraints; the resulting duplicate-key errors are translated here
// into typed sentinels that handlers map to HTTP 409 responses.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a requested row does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrUsernameTaken is returned when an insert or update collides with
// the unique index on users.username.
var ErrUsernameTaken = errors.New("username already exists")

// ErrEmailTaken is returned when an insert or update collides with
// the unique index on users.email.
var ErrEmailTaken = errors.New("email already exists")

// ErrDuplicateEntry is returned for a duplicate-key violation whose
// colliding index could not be determined from the driver error.
var ErrDuplicateEntry = errors.New("duplicate entry")

// ErrAlreadyInWatchlist is returned when (user_id, movie_api_id)
// collides with the unique pair index on the watchlists table.
var ErrAlreadyInWatchlist = errors.New("movie already in watchlist")

// mysqlDuplicateEntry is the MySQL error number raised on unique
// constraint violations.
const mysqlDuplicateEntry = 1062

// translateDuplicate classifies a duplicate-key error by the index name
// embedded in the driver message ("Duplicate entry 'x' for key
// 'users.username'"). Non-duplicate errors pass through unchanged.
func translateDuplicate(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != mysqlDuplicateEntry {
		return err
	}
	msg := strings.ToLower(me.Message)
	switch {
	case strings.Contains(msg, "username"):
		return ErrUsernameTaken
	case strings.Contains(msg, "email"):
		return ErrEmailTaken
	case strings.Contains(msg, "watchlist"):
		return ErrAlreadyInWatchlist
	}
	return ErrDuplicateEntry
}
