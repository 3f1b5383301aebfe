package store

import (
	"context"
	"sync"
	"time"

	"FOODREC_BACK-END/internal/models"
)

// Memory is an in-memory UserStore guarded by a mutex. It enforces the same
// uniqueness contract as the postgres store and is intended for tests and
// local development without a database.
type Memory struct {
	mu     sync.RWMutex
	users  map[int64]*models.User
	nextID int64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{users: make(map[int64]*models.User), nextID: 1}
}

func (s *Memory) FindByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Memory) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == identifier || u.Email == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return nil, ErrUsernameTaken
		}
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, ErrEmailTaken
		}
	}

	now := time.Now()
	cp := *user
	cp.UserID = s.nextID
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.nextID++ // ids are never reused, even if callers could delete

	s.users[cp.UserID] = &cp
	out := cp
	return &out, nil
}

func (s *Memory) Update(ctx context.Context, id int64, upd UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	if upd.Email != nil {
		for _, other := range s.users {
			if other.UserID != id && other.Email == *upd.Email {
				return nil, ErrEmailTaken
			}
		}
		u.Email = *upd.Email
	}
	if upd.FullName != nil {
		u.FullName = upd.FullName
	}
	u.UpdatedAt = time.Now()

	cp := *u
	return &cp, nil
}

// Delete removes a record. Not part of the UserStore contract; it exists so
// tests can construct tokens whose subject no longer resolves.
func (s *Memory) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}
