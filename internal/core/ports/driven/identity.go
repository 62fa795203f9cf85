package driven

import "context"

// Identity is the verified principal behind a bearer token.
type Identity struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	ImageURL  string
}

// IdentityVerifier checks bearer tokens against the external identity
// provider. Invalid or expired tokens return domain.ErrUnauthorized.
type IdentityVerifier interface {
	// Verify validates a bearer token and returns the identity it
	// belongs to.
	Verify(ctx context.Context, token string) (*Identity, error)
}
