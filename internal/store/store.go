// Package store provides access to persisted user records. The postgres
// implementation is the production store; the memory implementation honors
// the same contract and backs the test suite.
package store

import (
	"context"

	"FOODREC_BACK-END/internal/models"
)

// UserUpdate carries the mutable profile fields. Nil fields are left
// unchanged.
type UserUpdate struct {
	Email    *string
	FullName *string
}

// UserStore is the persistence contract for user records. Implementations
// must enforce username and email uniqueness atomically; callers never
// pre-check for duplicates.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByUsernameOrEmail matches the single identifier against both the
	// username and email columns and returns the first match. The two
	// uniqueness domains are assumed never to produce an ambiguous match;
	// this mirrors the login lookup the API has always exposed.
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)

	// Insert persists a new user and returns it with user_id and timestamps
	// assigned. Fails with ErrUsernameTaken or ErrEmailTaken on a uniqueness
	// violation.
	Insert(ctx context.Context, user *models.User) (*models.User, error)

	// Update applies the non-nil fields of upd to the user with the given id
	// and refreshes updated_at. Fails with ErrNotFound if the id is absent
	// and ErrEmailTaken if the new email belongs to a different user.
	Update(ctx context.Context, id int64, upd UserUpdate) (*models.User, error)
}
