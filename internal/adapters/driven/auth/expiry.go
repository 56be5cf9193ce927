package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
)

// Ensure ExpiryCheckedProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*ExpiryCheckedProvider)(nil)

// ExpiryCheckedProvider rejects JWT bearer tokens whose exp claim has passed,
// so an expired session fails before any request is sent. The signature is
// not verified; that is the server's job. Opaque tokens pass through.
type ExpiryCheckedProvider struct {
	next   driven.TokenProvider
	now    func() time.Time
	parser *jwt.Parser
}

// NewExpiryCheckedProvider wraps next.
func NewExpiryCheckedProvider(next driven.TokenProvider) *ExpiryCheckedProvider {
	return &ExpiryCheckedProvider{
		next:   next,
		now:    time.Now,
		parser: jwt.NewParser(),
	}
}

// Token returns the wrapped token unless it is an expired JWT.
func (p *ExpiryCheckedProvider) Token(ctx context.Context) (string, error) {
	token, err := p.next.Token(ctx)
	if err != nil {
		return "", err
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := p.parser.ParseUnverified(token, &claims); err != nil {
		return token, nil
	}
	if claims.ExpiresAt != nil && !p.now().Before(claims.ExpiresAt.Time) {
		return "", fmt.Errorf("%w: expired at %s", domain.ErrTokenExpired, claims.ExpiresAt.Time.Format(time.RFC3339))
	}
	return token, nil
}

// Expiry reports the exp claim of a JWT token, if any.
func Expiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
