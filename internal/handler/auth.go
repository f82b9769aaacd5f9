package handler

import (
	"context"  // provides context with cancellation for DB calls
	"errors"   // sentinel error comparisons
	"net/http" // HTTP status codes and primitives
	"net/mail" // email syntax validation
	"strconv"  // string-to-int conversion for path params
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/movie-watchlist/internal/config"
	"github.com/iliyamo/movie-watchlist/internal/middleware"
	"github.com/iliyamo/movie-watchlist/internal/repository"
	"github.com/iliyamo/movie-watchlist/internal/utils"
)

// AuthHandler bundles dependencies for registration, login and
// profile endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type updateReq struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}
type profileResp struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Register: validate input, hash the password and create the user.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if msg := validateUsername(req.Username); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if msg := validateEmail(req.Email); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if msg := validatePassword(req.Password); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		c.Logger().Errorf("register: hash password: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Email, hash)
	if err != nil {
		if status, msg := conflictStatus(err); status != 0 {
			return c.JSON(status, echo.Map{"error": msg})
		}
		c.Logger().Errorf("register: create user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user registered successfully",
		"userId":  uid,
	})
}

// Login: verify credentials and issue a signed access token. Unknown
// usernames and wrong passwords produce the same generic message so
// that account existence cannot be probed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		c.Logger().Errorf("login: load user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		c.Logger().Errorf("login: issue token: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged in successfully",
		"token":   access.Token,
		"user":    userPart{ID: u.ID, Username: u.Username},
	})
}

// Profile returns the caller's own profile. The password hash is never
// part of the response shape.
func (h *AuthHandler) Profile(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if id != middleware.CallerID(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only view your own profile"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		c.Logger().Errorf("profile: load user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, profileResp{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	})
}

// UpdateProfile applies a partial update to the caller's own profile.
// Only supplied fields are touched; a supplied password is rehashed
// before it reaches storage.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if id != middleware.CallerID(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you can only update your own profile"})
	}

	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	var upd repository.UserUpdate
	if req.Username != nil {
		name := strings.TrimSpace(*req.Username)
		if msg := validateUsername(name); msg != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
		}
		upd.Username = &name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if msg := validateEmail(email); msg != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
		}
		upd.Email = &email
	}
	if req.Password != nil {
		if msg := validatePassword(*req.Password); msg != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
		}
		hash, err := utils.HashPassword(*req.Password, h.Cfg.BcryptCost)
		if err != nil {
			c.Logger().Errorf("update profile: hash password: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
		upd.PasswordHash = &hash
	}
	if upd.Empty() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no fields provided for update"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	changed, err := h.Users.Update(ctx, id, upd)
	if err != nil {
		if status, msg := conflictStatus(err); status != 0 {
			return c.JSON(status, echo.Map{"error": msg})
		}
		c.Logger().Errorf("update profile: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if !changed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user updated successfully"})
}

// ----- validation helpers -----

func validateUsername(name string) string {
	if len(name) < 3 {
		return "username must be at least 3 characters long"
	}
	return ""
}

func validateEmail(email string) string {
	if email == "" {
		return "email is required"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "please enter a valid email address"
	}
	return ""
}

func validatePassword(pw string) string {
	if len(pw) < 6 {
		return "password must be at least 6 characters long"
	}
	return ""
}

// conflictStatus maps duplicate-key sentinels to a 409 with a message
// naming the colliding field where the driver identified it. It
// returns 0 for errors that are not uniqueness conflicts.
func conflictStatus(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrUsernameTaken):
		return http.StatusConflict, "username already exists"
	case errors.Is(err, repository.ErrEmailTaken):
		return http.StatusConflict, "email already exists"
	case errors.Is(err, repository.ErrDuplicateEntry):
		return http.StatusConflict, "username or email already exists"
	}
	return 0, ""
}
