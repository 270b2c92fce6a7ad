package domain

import "time"

// Account is a registered member. Email is stored trimmed and lower-cased
// and is unique across accounts.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt encoded
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
