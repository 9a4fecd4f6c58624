// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash in constant time.
	// A mismatch is (false, nil); a non-nil error means the comparison itself
	// failed (e.g. a corrupt stored hash) and must be treated as a server
	// fault, not as rejected credentials.
	Check(password, hash string) (bool, error)
}
