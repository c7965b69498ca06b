package ports

import "context"

// Identity is a self-declared voter: an opaque non-empty key (their
// email) and a display name. Neither is verified.
type Identity struct {
	VoterKey string `json:"voter_key"`
	Name     string `json:"name"`
}

type SessionService interface {
	// IssueToken validates the identity and returns a signed session
	// token embedding it.
	IssueToken(ctx context.Context, identity Identity) (string, error)
	// ParseToken verifies a session token and recovers the identity.
	ParseToken(ctx context.Context, token string) (*Identity, error)
}
