package domain

import "time"

type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string // argon2 encoded
	Role         string
	TenantID     *int64 // nullable, admins have no tenant
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
