package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/clock"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/integrations"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/services"
	"github.com/custodia-labs/drivelink-cli/internal/i18n"
)

// mockAPI implements driven.IntegrationAPI and driven.FolderAPI for testing.
type mockAPI struct {
	mu sync.Mutex

	statusFn     func(ctx context.Context) (*domain.IntegrationStatus, error)
	authURLFn    func(ctx context.Context) (string, error)
	confirmFn    func(ctx context.Context, code string) (*domain.IntegrationStatus, error)
	disconnectFn func(ctx context.Context) error
	generateFn   func(ctx context.Context, req domain.FolderRequest) (*domain.FolderGenerationResult, error)

	confirmCalls    []string
	disconnectCalls int
	folderRequests  []domain.FolderRequest
}

func (m *mockAPI) Status(ctx context.Context) (*domain.IntegrationStatus, error) {
	if m.statusFn != nil {
		return m.statusFn(ctx)
	}
	return &domain.IntegrationStatus{Connected: true, Email: "user@example.com"}, nil
}

func (m *mockAPI) AuthURL(ctx context.Context) (string, error) {
	if m.authURLFn != nil {
		return m.authURLFn(ctx)
	}
	return "https://accounts.google.com/o/oauth2/auth?state=x", nil
}

func (m *mockAPI) ConfirmCode(ctx context.Context, code string) (*domain.IntegrationStatus, error) {
	m.mu.Lock()
	m.confirmCalls = append(m.confirmCalls, code)
	m.mu.Unlock()
	if m.confirmFn != nil {
		return m.confirmFn(ctx, code)
	}
	return &domain.IntegrationStatus{Connected: true, Email: "user@example.com"}, nil
}

func (m *mockAPI) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	m.disconnectCalls++
	m.mu.Unlock()
	if m.disconnectFn != nil {
		return m.disconnectFn(ctx)
	}
	return nil
}

func (m *mockAPI) GenerateFolders(ctx context.Context, req domain.FolderRequest) (*domain.FolderGenerationResult, error) {
	m.mu.Lock()
	m.folderRequests = append(m.folderRequests, req)
	m.mu.Unlock()
	if m.generateFn != nil {
		return m.generateFn(ctx, req)
	}
	return &domain.FolderGenerationResult{Success: true, RootFolderID: "root-1", ArchiveFolderID: "archive-1"}, nil
}

func (m *mockAPI) confirmed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.confirmCalls...)
}

// mockInspector implements driven.FolderInspector for testing.
type mockInspector struct {
	inspectFn func(ctx context.Context, folders domain.ProvisionedFolders) (*domain.FolderInspection, error)
}

func (m *mockInspector) Inspect(ctx context.Context, folders domain.ProvisionedFolders) (*domain.FolderInspection, error) {
	return m.inspectFn(ctx, folders)
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	values map[string]string
	setErr error
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{values: map[string]string{}}
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	s := domain.DefaultSettings()
	s.API.Token = m.values[domain.KeyAPIToken]
	s.API.TokenFile = m.values[domain.KeyAPITokenFile]
	if v, ok := m.values[domain.KeyAPIURL]; ok {
		s.API.URL = v
	}
	s.Drive.AccessToken = m.values[domain.KeyDriveToken]
	return &s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if _, err := domain.ParseSetting(key, value); err != nil {
		return err
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsService) Unset(key string) error {
	if !domain.IsSettingKey(key) {
		return domain.ErrUnknownSetting
	}
	delete(m.values, key)
	return nil
}

func (m *mockSettingsService) Path() string {
	return "/tmp/drivelink/config.toml"
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

// mockOpener implements driven.BrowserOpener for testing.
type mockOpener struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (m *mockOpener) Open(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = append(m.opened, url)
	return m.err
}

func (m *mockOpener) urls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.opened...)
}

// testServices wires real flows over a mock API with short delays.
type testServices struct {
	api       *mockAPI
	inspector *mockInspector
	settings  *mockSettingsService
	opener    *mockOpener
}

func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	bundle, err := i18n.LoadEmbedded()
	require.NoError(t, err)

	ts := &testServices{
		api:      &mockAPI{},
		settings: newMockSettingsService(),
		opener:   &mockOpener{},
	}
	source := integrations.NewSource(ts.api)
	ts.inspector = &mockInspector{}
	folders := services.NewFolderService(ts.api, source, ts.inspector)

	oldIntegration, oldFolders, oldSettings := integrationService, folderService, settingsService
	oldFlows, oldText, oldCallback, oldRefresh := flows, text, callbackSettings, refreshStatus
	oldBootstrap, oldOpener, oldConfirmer, oldReader := bootstrap, newBrowserOpener, newConfirmer, newSecretReader
	t.Cleanup(func() {
		integrationService, folderService, settingsService = oldIntegration, oldFolders, oldSettings
		flows, text, callbackSettings, refreshStatus = oldFlows, oldText, oldCallback, oldRefresh
		bootstrap, newBrowserOpener, newConfirmer, newSecretReader = oldBootstrap, oldOpener, oldConfirmer, oldReader
	})

	bootstrap = nil
	useServices(&Services{
		Integration: services.NewIntegrationService(ts.api),
		Folders:     folders,
		Settings:    ts.settings,
		Flows: services.NewFlows(services.FlowsConfig{
			API:             ts.api,
			Folders:         folders,
			Status:          source,
			Clock:           clock.Real{},
			Text:            bundle.Localizer("en"),
			CallbackDelay:   time.Millisecond,
			CompletionDelay: time.Millisecond,
		}),
		Text:          bundle.Localizer("en"),
		Callback:      domain.CallbackSettings{Port: 0, Path: domain.DefaultCallbackPath},
		RefreshStatus: source.Refresh,
	})
	newBrowserOpener = func() driven.BrowserOpener { return ts.opener }
	newConfirmer = func(*cobra.Command) driven.Confirmer { return &mockConfirmer{} }
	return ts
}

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := &syncBuffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag in the tree to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// syncBuffer is a bytes.Buffer safe for concurrent writers and readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
