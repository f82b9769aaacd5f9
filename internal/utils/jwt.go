package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp as a time.Time. Access tokens are presented in the
// Authorization header when calling protected endpoints; there is no
// server-side session or revocation list, expiry alone ends a session.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// TokenClaims is the identity recovered from a verified access token.
// It carries exactly what was embedded at login: the user's id and
// username. Handlers use it for every ownership comparison.
type TokenClaims struct {
	UserID   uint64
	Username string
}

// ErrInvalidToken is returned by ParseAccessToken for any token that
// cannot be accepted: malformed, expired, signed with a different
// secret or a different algorithm, or missing the expected claims.
// Callers must treat all of these cases identically (HTTP 401).
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user ID, the username, and a TTL in minutes. The
// JWT includes the subject (sub), the username, expiration (exp) and
// issued at (iat) claims.
func NewAccessToken(secret string, userID uint64, username string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a raw token
// string and extracts the embedded identity. Verification is pure
// computation: a signature check plus an expiry comparison, no I/O.
func ParseAccessToken(secret, raw string) (TokenClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Type assert the signing method to HMAC; reject others.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return TokenClaims{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrInvalidToken
	}

	var tc TokenClaims
	// JWT numeric values are decoded as float64; some encoders emit
	// numeric strings instead, so both forms are accepted.
	switch sub := claims["sub"].(type) {
	case float64:
		tc.UserID = uint64(sub)
	case string:
		n, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return TokenClaims{}, ErrInvalidToken
		}
		tc.UserID = n
	default:
		return TokenClaims{}, ErrInvalidToken
	}
	if name, ok := claims["username"].(string); ok {
		tc.Username = name
	}
	if tc.UserID == 0 {
		return TokenClaims{}, ErrInvalidToken
	}
	return tc, nil
}
