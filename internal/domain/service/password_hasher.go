// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit
// within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// Implementations may support more than one scheme at once so that hashes
// produced by a previously-preferred algorithm keep verifying after a
// scheme rotation.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password using the
	// currently preferred scheme.
	Hash(password string) (string, error)

	// Verify compares a plaintext password with a stored hash. Wrong
	// password, unsupported scheme and malformed hash are all a uniform
	// false.
	Verify(password, hash string) bool
}
