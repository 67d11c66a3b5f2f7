// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the sole entity of the system: a persisted account holding
// identity, credential, role and status.
//
// The ID is the store-generated identifier in its canonical string form;
// it is opaque to the domain and stable for the account's lifetime.
// PasswordHash is the one-way hash of the current credential; the
// plaintext is never stored, and the hash never leaves the service.
type User struct {
	ID           string
	Email        string // Normalized (lower-cased, trimmed) unique login identifier.
	PasswordHash string
	FullName     string
	Role         Role
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time  // Refreshed on every mutation.
	LastLogin    *time.Time // Nil until the first successful login.
}
