package auth

import (
	"context"
	"errors"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
)

// Ensure ChainTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*ChainTokenProvider)(nil)

// ChainTokenProvider asks each provider in order and returns the first token.
// Providers reporting domain.ErrTokenUnavailable are skipped; any other error
// stops the chain.
type ChainTokenProvider struct {
	providers []driven.TokenProvider
}

// NewChainTokenProvider creates a chain. Nil providers are ignored.
func NewChainTokenProvider(providers ...driven.TokenProvider) *ChainTokenProvider {
	chain := &ChainTokenProvider{}
	for _, p := range providers {
		if p != nil {
			chain.providers = append(chain.providers, p)
		}
	}
	return chain
}

// Token returns the first available token.
func (c *ChainTokenProvider) Token(ctx context.Context) (string, error) {
	for _, p := range c.providers {
		token, err := p.Token(ctx)
		if errors.Is(err, domain.ErrTokenUnavailable) {
			continue
		}
		return token, err
	}
	return "", domain.ErrTokenUnavailable
}
