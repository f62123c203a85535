package auth

import "errors"

// Identity is the resolved actor behind a bearer credential.
type Identity struct {
	UserID        string
	EmailVerified bool
}

// Verifier resolves a bearer token to an identity. The real implementation
// is an external identity provider; StaticVerifier backs development and
// tests.
type Verifier interface {
	Verify(token string) (Identity, error)
}

// ErrInvalidToken is returned for unknown or malformed tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// StaticVerifier maps fixed tokens to user ids.
type StaticVerifier struct {
	tokens map[string]Identity
}

// NewStaticVerifier builds a verifier from token→userID maps. Tokens in
// verified resolve to email-verified identities; tokens in unverified
// resolve to identities that fail the email gate.
func NewStaticVerifier(verified, unverified map[string]string) *StaticVerifier {
	resolved := make(map[string]Identity, len(verified)+len(unverified))
	for token, userID := range verified {
		resolved[token] = Identity{UserID: userID, EmailVerified: true}
	}
	for token, userID := range unverified {
		resolved[token] = Identity{UserID: userID}
	}
	return &StaticVerifier{tokens: resolved}
}

// Verify implements Verifier.
func (v *StaticVerifier) Verify(token string) (Identity, error) {
	id, ok := v.tokens[token]
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return id, nil
}
