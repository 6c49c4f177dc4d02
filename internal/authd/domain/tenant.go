package domain

import "time"

// Tenant is a business location that managers and customers belong to.
type Tenant struct {
	ID        int64
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
