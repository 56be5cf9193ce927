package driven

import "context"

// TokenProvider provides the bearer token for application server calls.
// The token is owned by an external auth provider; drivelink only reads it.
type TokenProvider interface {
	// Token returns the current bearer token.
	// Returns domain.ErrTokenUnavailable when no token is configured and
	// domain.ErrTokenExpired when the token is known to be expired.
	Token(ctx context.Context) (string, error)
}
