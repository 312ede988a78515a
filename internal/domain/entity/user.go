// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User represents a registered account. The ID is assigned by the store
// on creation; Nickname is stored trimmed and is unique across all users.
type User struct {
	ID           int64
	Nickname     string
	PasswordHash string // opaque, scheme-tagged; read only through the PasswordHasher
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
