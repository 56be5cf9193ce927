package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
)

// providerSource reads Google access tokens from a driven.TokenProvider.
// Tokens carry no expiry; the provider decides when a token is stale.
type providerSource struct {
	ctx      context.Context
	provider driven.TokenProvider
}

// NewTokenSource returns an oauth2.TokenSource backed by provider. ctx bounds
// every token lookup the Drive client makes.
func NewTokenSource(ctx context.Context, provider driven.TokenProvider) oauth2.TokenSource {
	return providerSource{ctx: ctx, provider: provider}
}

func (s providerSource) Token() (*oauth2.Token, error) {
	access, err := s.provider.Token(s.ctx)
	if err != nil {
		return nil, fmt.Errorf("google access token: %w", err)
	}
	if access == "" {
		return nil, fmt.Errorf("google access token: %w", domain.ErrTokenUnavailable)
	}
	return &oauth2.Token{AccessToken: access, TokenType: "Bearer"}, nil
}
