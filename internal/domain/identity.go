package domain

import "time"

// Identity is the credential record behind a profile. Both share one ID.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
