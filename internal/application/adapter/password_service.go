// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService guards the credential that unlocks an owner's ledger.
type PasswordService interface {
	// CheckStrength returns a coded auth error when password cannot be accepted at registration.
	CheckStrength(password string) error

	// Hash returns the stored form of a password that passed CheckStrength.
	Hash(password string) (string, error)

	// Matches reports whether password is the one behind hash.
	Matches(hash, password string) bool
}
