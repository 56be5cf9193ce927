// Package integrations holds the application's shared integrations status.
package integrations

import (
	"context"
	"sync"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.IntegrationsStatusProvider = (*Source)(nil)

// Source caches the Google Drive status for read-only consumers.
// It starts out loading until the first Refresh or Set.
type Source struct {
	api driven.IntegrationAPI

	mu      sync.RWMutex
	drive   domain.ProviderStatus
	pending int
}

// NewSource creates a status source backed by api.
func NewSource(api driven.IntegrationAPI) *Source {
	return &Source{
		api:   api,
		drive: domain.ProviderStatus{Loading: true},
	}
}

// GoogleDrive returns the cached Drive status.
func (s *Source) GoogleDrive(_ context.Context) domain.ProviderStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drive
}

// Refresh fetches the Drive status from the server. On failure the source
// reports not connected.
func (s *Source) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.pending++
	s.drive.Loading = true
	s.mu.Unlock()

	status, err := s.api.Status(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if err != nil {
		logger.Debug("integrations: drive status refresh failed: %v", err)
		s.drive = domain.ProviderStatus{Loading: s.pending > 0}
		return err
	}
	s.drive = domain.ProviderStatus{Connected: status.Connected, Loading: s.pending > 0}
	return nil
}

// Set records a status observed elsewhere, such as by the status panel.
func (s *Source) Set(status domain.IntegrationStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drive = domain.ProviderStatus{Connected: status.Connected, Loading: s.pending > 0}
}
