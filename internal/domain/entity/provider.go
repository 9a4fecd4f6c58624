// Package entity contains the core business objects of the application.
package entity

// Provider identifies the authentication method that owns an account.
// It is fixed at account creation and never changes afterwards.
type Provider string

const (
	// ProviderLocal marks accounts created through email/password registration.
	ProviderLocal Provider = "local"
	// ProviderGoogle marks accounts created through Google Sign-In.
	ProviderGoogle Provider = "google"
)

// String returns the string representation of the Provider.
func (p Provider) String() string {
	return string(p)
}

// IsValid checks if the Provider is a known value.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderLocal, ProviderGoogle:
		return true
	default:
		return false
	}
}
