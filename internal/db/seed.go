package db

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SeedUser is one bootstrap account.
type SeedUser struct {
	Username string
	Password string
}

// SeedUsers creates the bootstrap accounts if they are missing. Existing
// users are left untouched, so running this on every startup is safe and
// never resets a changed password.
func SeedUsers(ctx context.Context, d *DB, users []SeedUser) error {
	for _, u := range users {
		var count int
		row := d.QueryRow(ctx, `SELECT COUNT(1) FROM users WHERE username = ?`, u.Username)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("check user %s: %w", u.Username, err)
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Username, err)
		}
		if _, err := d.Exec(ctx, `INSERT INTO users (username, password_hash) VALUES (?, ?)`, u.Username, string(hash)); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}
	return nil
}
