// Package auth provides bearer token sources for the application server API.
package auth

import (
	"context"
	"strings"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
)

// Ensure StaticTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticTokenProvider)(nil)

// StaticTokenProvider serves a token fixed at construction, such as one
// taken from the environment or the config file.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider for token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: strings.TrimSpace(token)}
}

// Token returns the token, or domain.ErrTokenUnavailable when it is empty.
func (p *StaticTokenProvider) Token(_ context.Context) (string, error) {
	if p.token == "" {
		return "", domain.ErrTokenUnavailable
	}
	return p.token, nil
}
