package mcp

import (
	"context"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
)

// mockIntegrationService implements driving.IntegrationService for testing.
type mockIntegrationService struct {
	statusFn     func(ctx context.Context) (*domain.IntegrationStatus, error)
	authURLFn    func(ctx context.Context) (string, error)
	confirmFn    func(ctx context.Context, code string) (*domain.IntegrationStatus, error)
	disconnectFn func(ctx context.Context) error

	disconnectCalls int
}

func (m *mockIntegrationService) Status(ctx context.Context) (*domain.IntegrationStatus, error) {
	if m.statusFn != nil {
		return m.statusFn(ctx)
	}
	return &domain.IntegrationStatus{}, nil
}

func (m *mockIntegrationService) AuthURL(ctx context.Context) (string, error) {
	if m.authURLFn != nil {
		return m.authURLFn(ctx)
	}
	return "", nil
}

func (m *mockIntegrationService) ConfirmCode(ctx context.Context, code string) (*domain.IntegrationStatus, error) {
	if m.confirmFn != nil {
		return m.confirmFn(ctx, code)
	}
	return &domain.IntegrationStatus{Connected: true}, nil
}

func (m *mockIntegrationService) Disconnect(ctx context.Context) error {
	m.disconnectCalls++
	if m.disconnectFn != nil {
		return m.disconnectFn(ctx)
	}
	return nil
}

// mockFolderService implements driving.FolderService for testing.
type mockFolderService struct {
	generateFn func(ctx context.Context, req domain.FolderRequest) (*domain.ProvisionedFolders, error)
	verifyFn   func(ctx context.Context, folders domain.ProvisionedFolders) (*domain.FolderInspection, error)
}

func (m *mockFolderService) Generate(ctx context.Context, req domain.FolderRequest) (*domain.ProvisionedFolders, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, req)
	}
	return &domain.ProvisionedFolders{}, nil
}

func (m *mockFolderService) Verify(
	ctx context.Context,
	folders domain.ProvisionedFolders,
) (*domain.FolderInspection, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, folders)
	}
	return &domain.FolderInspection{}, nil
}
