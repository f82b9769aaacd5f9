package handler_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/movie-watchlist/internal/model"
	"github.com/iliyamo/movie-watchlist/internal/repository"
)

// memUserStore is an in-memory stand-in for repository.UserRepo. It
// enforces the same uniqueness rules the MySQL schema does and reports
// them with the same sentinels.
type memUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uint64]model.User)}
}

func (s *memUserStore) Create(_ context.Context, username, email, passwordHash string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Username == username {
			return 0, repository.ErrUsernameTaken
		}
		if u.Email == email {
			return 0, repository.ErrEmailTaken
		}
	}
	s.nextID++
	now := time.Now().UTC()
	s.users[s.nextID] = model.User{
		ID: s.nextID, Username: username, Email: email,
		PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now,
	}
	return s.nextID, nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == strings.TrimSpace(username) {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) Update(_ context.Context, id uint64, upd repository.UserUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return false, nil
	}
	for otherID, other := range s.users {
		if otherID == id {
			continue
		}
		if upd.Username != nil && other.Username == *upd.Username {
			return false, repository.ErrUsernameTaken
		}
		if upd.Email != nil && other.Email == *upd.Email {
			return false, repository.ErrEmailTaken
		}
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return true, nil
}

// memWatchlistStore is an in-memory stand-in for
// repository.WatchlistRepo with the same (user, movie) uniqueness.
type memWatchlistStore struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]model.WatchlistItem
	order  []uint64
}

func newMemWatchlistStore() *memWatchlistStore {
	return &memWatchlistStore{items: make(map[uint64]model.WatchlistItem)}
}

func (s *memWatchlistStore) Add(_ context.Context, userID uint64, movieAPIID string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.UserID == userID && it.MovieAPIID == movieAPIID {
			return 0, repository.ErrAlreadyInWatchlist
		}
	}
	s.nextID++
	s.items[s.nextID] = model.WatchlistItem{ID: s.nextID, UserID: userID, MovieAPIID: movieAPIID}
	s.order = append(s.order, s.nextID)
	return s.nextID, nil
}

func (s *memWatchlistStore) Remove(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func (s *memWatchlistStore) ListByUser(_ context.Context, userID uint64) ([]model.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.WatchlistItem, 0)
	for _, id := range s.order {
		if it, ok := s.items[id]; ok && it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *memWatchlistStore) GetByID(_ context.Context, id uint64) (model.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return model.WatchlistItem{}, repository.ErrNotFound
	}
	return it, nil
}
