package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
)

// mockIntegrationAPI implements driven.IntegrationAPI for testing.
type mockIntegrationAPI struct {
	mu sync.Mutex

	statusFn     func(ctx context.Context) (*domain.IntegrationStatus, error)
	authURLFn    func(ctx context.Context) (string, error)
	confirmFn    func(ctx context.Context, code string) (*domain.IntegrationStatus, error)
	disconnectFn func(ctx context.Context) error

	statusCalls     int
	authURLCalls    int
	confirmCalls    []string
	disconnectCalls int
}

func (m *mockIntegrationAPI) Status(ctx context.Context) (*domain.IntegrationStatus, error) {
	m.mu.Lock()
	m.statusCalls++
	m.mu.Unlock()
	if m.statusFn != nil {
		return m.statusFn(ctx)
	}
	return &domain.IntegrationStatus{}, nil
}

func (m *mockIntegrationAPI) AuthURL(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.authURLCalls++
	m.mu.Unlock()
	if m.authURLFn != nil {
		return m.authURLFn(ctx)
	}
	return "https://accounts.google.com/o/oauth2/auth?state=x", nil
}

func (m *mockIntegrationAPI) ConfirmCode(ctx context.Context, code string) (*domain.IntegrationStatus, error) {
	m.mu.Lock()
	m.confirmCalls = append(m.confirmCalls, code)
	m.mu.Unlock()
	if m.confirmFn != nil {
		return m.confirmFn(ctx, code)
	}
	return &domain.IntegrationStatus{Connected: true, Email: "user@example.com"}, nil
}

func (m *mockIntegrationAPI) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	m.disconnectCalls++
	m.mu.Unlock()
	if m.disconnectFn != nil {
		return m.disconnectFn(ctx)
	}
	return nil
}

// mockFolderAPI implements driven.FolderAPI for testing.
type mockFolderAPI struct {
	generateFn func(ctx context.Context, req domain.FolderRequest) (*domain.FolderGenerationResult, error)
	requests   []domain.FolderRequest
}

func (m *mockFolderAPI) GenerateFolders(
	ctx context.Context,
	req domain.FolderRequest,
) (*domain.FolderGenerationResult, error) {
	m.requests = append(m.requests, req)
	if m.generateFn != nil {
		return m.generateFn(ctx, req)
	}
	return &domain.FolderGenerationResult{
		Success:         true,
		RootFolderID:    "root-1",
		ArchiveFolderID: "archive-1",
	}, nil
}

// mockStatusProvider implements driven.IntegrationsStatusProvider for testing.
type mockStatusProvider struct {
	status domain.ProviderStatus
}

func (m *mockStatusProvider) GoogleDrive(_ context.Context) domain.ProviderStatus {
	return m.status
}

// mockInspector implements driven.FolderInspector for testing.
type mockInspector struct {
	inspection *domain.FolderInspection
	err        error
	calls      int
}

func (m *mockInspector) Inspect(_ context.Context, _ domain.ProvisionedFolders) (*domain.FolderInspection, error) {
	m.calls++
	return m.inspection, m.err
}

// mockOpener implements driven.BrowserOpener for testing.
type mockOpener struct {
	opened []string
	err    error
}

func (m *mockOpener) Open(url string) error {
	m.opened = append(m.opened, url)
	return m.err
}

// mockConfirmer implements driven.Confirmer for testing.
type mockConfirmer struct {
	answer  bool
	prompts []string
}

func (m *mockConfirmer) Confirm(_ context.Context, prompt string) bool {
	m.prompts = append(m.prompts, prompt)
	return m.answer
}

// mockNavigator implements driven.Navigator for testing.
type mockNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (m *mockNavigator) Navigate(route string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = append(m.routes, route)
}

func (m *mockNavigator) Routes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.routes...)
}

// mockLocalizer renders keys with a marker so tests can tell them apart
// from raw messages.
type mockLocalizer struct{}

func (mockLocalizer) Text(key string, args ...any) string {
	if len(args) > 0 {
		return "t:" + key + ":" + args[0].(string)
	}
	return "t:" + key
}
