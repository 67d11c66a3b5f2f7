// Package entity contains the core business objects of the project.
package entity

// Status represents the usability flag of an account. Inactive blocks
// both login and already-issued-token access.
type Status string

const (
	// StatusActive indicates a usable account.
	StatusActive Status = "active"
	// StatusInactive indicates a deactivated account.
	StatusInactive Status = "inactive"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the Status is a valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}
