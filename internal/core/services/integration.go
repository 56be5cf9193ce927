package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
)

// Ensure IntegrationService implements the interface.
var _ driving.IntegrationService = (*IntegrationService)(nil)

// IntegrationService passes integration operations through to the server.
type IntegrationService struct {
	api driven.IntegrationAPI
}

// NewIntegrationService creates a new integration service.
func NewIntegrationService(api driven.IntegrationAPI) *IntegrationService {
	return &IntegrationService{api: api}
}

// Status returns the server-side connection state.
func (s *IntegrationService) Status(ctx context.Context) (*domain.IntegrationStatus, error) {
	if s.api == nil {
		return nil, domain.ErrNotConfigured
	}
	status, err := s.api.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}
	logger.Debug("integration status: connected=%t", status.Connected)
	return status, nil
}

// AuthURL returns the provider authorization URL.
func (s *IntegrationService) AuthURL(ctx context.Context) (string, error) {
	if s.api == nil {
		return "", domain.ErrNotConfigured
	}
	authURL, err := s.api.AuthURL(ctx)
	if err != nil {
		return "", fmt.Errorf("get auth url: %w", err)
	}
	logger.Debug("auth url received, length: %d", len(authURL))
	return authURL, nil
}

// ConfirmCode exchanges an authorization code.
func (s *IntegrationService) ConfirmCode(ctx context.Context, code string) (*domain.IntegrationStatus, error) {
	if s.api == nil {
		return nil, domain.ErrNotConfigured
	}
	if strings.TrimSpace(code) == "" {
		return nil, &domain.ValidationError{Reason: domain.ReasonMissingCode}
	}
	status, err := s.api.ConfirmCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("confirm code: %w", err)
	}
	return status, nil
}

// Disconnect revokes the connection.
func (s *IntegrationService) Disconnect(ctx context.Context) error {
	if s.api == nil {
		return domain.ErrNotConfigured
	}
	if err := s.api.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}
