package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"FOODREC_BACK-END/internal/models"
)

const userColumns = `user_id, username, email, password_hash, full_name, created_at, updated_at`

// Postgres is the pgx-backed UserStore. Uniqueness is enforced by the unique
// indexes on username and email; violations surface as pgconn errors with
// code 23505 and are classified by constraint name.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store on top of an existing pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.UserID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FullName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *Postgres) FindByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
	return scanUser(row)
}

func (s *Postgres) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *Postgres) FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1 LIMIT 1`,
		identifier)
	return scanUser(row)
}

func (s *Postgres) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, full_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING user_id, created_at, updated_at`,
		user.Username, user.Email, user.PasswordHash, user.FullName)

	u := *user
	if err := row.Scan(&u.UserID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if uniqueErr := classifyUnique(err); uniqueErr != nil {
			return nil, uniqueErr
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}

func (s *Postgres) Update(ctx context.Context, id int64, upd UserUpdate) (*models.User, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE users
		 SET email = COALESCE($2, email),
		     full_name = COALESCE($3, full_name),
		     updated_at = now()
		 WHERE user_id = $1
		 RETURNING `+userColumns,
		id, upd.Email, upd.FullName)

	u, err := scanUser(row)
	if err != nil {
		if uniqueErr := classifyUnique(err); uniqueErr != nil {
			return nil, uniqueErr
		}
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// classifyUnique maps a 23505 unique violation to the matching sentinel,
// keyed on the constraint name from the users table migration.
func classifyUnique(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return ErrUsernameTaken
	case "users_email_key":
		return ErrEmailTaken
	}
	return nil
}
