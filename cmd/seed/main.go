// Command seed prepares the database for local development: it applies the
// schema migrations and inserts the demo accounts. The demo passwords are
// stored as plain sha256 hex digests, bypassing the application's bcrypt
// path; logging in with them exercises the legacy-format fallback of the
// password verifier.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"FOODREC_BACK-END/internal/config"
	"FOODREC_BACK-END/internal/store"
)

type seedUser struct {
	username string
	email    string
	password string
	fullName string
}

var seedUsers = []seedUser{
	{"testuser", "test@example.com", "password123", "Test User"},
	{"admin", "admin@example.com", "admin123", "Administrator"},
	{"demo", "demo@example.com", "demo123", "Demo User"},
}

func legacyDigest(password string) string {
	d := sha256.Sum256([]byte(password))
	return hex.EncodeToString(d[:])
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.GetDSN())
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}

	if err := store.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("schema is up to date")

	// Skip seeding if the demo accounts were inserted on a previous run.
	var one int
	err = pool.QueryRow(ctx, `SELECT 1 FROM users WHERE username = 'testuser'`).Scan(&one)
	if err == nil {
		log.Println("demo accounts already exist, skipping seed")
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		log.Fatalf("check existing accounts: %v", err)
	}

	for _, u := range seedUsers {
		_, err := pool.Exec(ctx,
			`INSERT INTO users (username, email, password_hash, full_name)
			 VALUES ($1, $2, $3, $4)`,
			u.username, u.email, legacyDigest(u.password), u.fullName)
		if err != nil {
			log.Fatalf("insert %s: %v", u.username, err)
		}
		fmt.Printf("  - %s (%s) - %s\n", u.username, u.email, u.fullName)
	}
	log.Println("demo accounts created")
}
