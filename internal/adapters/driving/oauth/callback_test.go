//nolint:noctx // Test file uses http.Get for convenience; context not required in tests
package oauth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
)

// mockHandler implements driving.CallbackHandler for testing.
type mockHandler struct {
	mu     sync.Mutex
	calls  []url.Values
	snap   domain.CallbackSnapshot
	err    error
	closed bool
}

func (m *mockHandler) Handle(_ context.Context, params url.Values) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, params)
	return m.err
}

func (m *mockHandler) ReturnToSettings() {}

func (m *mockHandler) Snapshot() domain.CallbackSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

func (m *mockHandler) Close() { m.closed = true }

func (m *mockHandler) Calls() []url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]url.Values(nil), m.calls...)
}

type keyText struct{}

func (keyText) Text(key string, args ...any) string {
	if len(args) > 0 {
		return fmt.Sprintf("%s(%v)", key, args[0])
	}
	return key
}

func startServer(t *testing.T, handler *mockHandler) *CallbackServer {
	t.Helper()
	server := NewCallbackServer(Config{Port: 0, Text: keyText{}}, handler)
	require.NoError(t, server.Start())
	t.Cleanup(func() { _ = server.Stop() })
	return server
}

func get(t *testing.T, rawURL string) (int, string) {
	t.Helper()
	resp, err := http.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestNewCallbackServer_Defaults(t *testing.T) {
	server := NewCallbackServer(Config{Port: 8765}, &mockHandler{})

	assert.Equal(t, "http://127.0.0.1:8765/google-drive/callback", server.RedirectURI())
	assert.Equal(t, 8765, server.Port())
}

func TestCallbackServer_Success(t *testing.T) {
	handler := &mockHandler{snap: domain.CallbackSnapshot{
		State:  domain.CallbackSuccess,
		Status: &domain.IntegrationStatus{Connected: true, Email: "user@example.com"},
	}}
	server := startServer(t, handler)
	assert.NotZero(t, server.Port())

	status, body := get(t, server.RedirectURI()+"?code=4%2Fabc&state=s")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "callback.success")
	assert.Contains(t, body, "callback.success_email(user@example.com)")
	require.Len(t, handler.Calls(), 1)
	assert.Equal(t, "4/abc", handler.Calls()[0].Get("code"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	result, err := server.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CallbackSuccess, result.Snapshot.State)
	assert.NoError(t, result.Err)
}

func TestCallbackServer_ErrorIsEscaped(t *testing.T) {
	handler := &mockHandler{
		snap: domain.CallbackSnapshot{State: domain.CallbackError, Error: "<script>bad</script>"},
		err:  &domain.ValidationError{Reason: domain.ReasonProviderError, Detail: "access_denied"},
	}
	server := startServer(t, handler)

	status, body := get(t, server.RedirectURI()+"?error=access_denied")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "callback.error_title")
	assert.Contains(t, body, "&lt;script&gt;bad&lt;/script&gt;")
	assert.NotContains(t, body, "<script>")

	result, err := server.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, domain.IsValidation(result.Err, domain.ReasonProviderError))
}

func TestCallbackServer_HandlesOnce(t *testing.T) {
	handler := &mockHandler{snap: domain.CallbackSnapshot{State: domain.CallbackSuccess}}
	server := startServer(t, handler)

	get(t, server.RedirectURI()+"?code=a")
	status, body := get(t, server.RedirectURI()+"?code=b")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "callback.success")
	assert.Len(t, handler.Calls(), 1)
}

func TestCallbackServer_OtherPathsNotFound(t *testing.T) {
	handler := &mockHandler{}
	server := startServer(t, handler)

	status, _ := get(t, fmt.Sprintf("http://127.0.0.1:%d/favicon.ico", server.Port()))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Empty(t, handler.Calls())
}

func TestCallbackServer_WaitTimeout(t *testing.T) {
	server := startServer(t, &mockHandler{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := server.Wait(ctx)

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestCallbackServer_WaitCancelled(t *testing.T) {
	server := startServer(t, &mockHandler{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := server.Wait(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCallbackServer_Start_PortInUse(t *testing.T) {
	first := startServer(t, &mockHandler{})

	second := NewCallbackServer(Config{Port: first.Port()}, &mockHandler{})
	err := second.Start()

	assert.ErrorContains(t, err, "failed to listen")
}

func TestCallbackServer_StopWithoutStart(t *testing.T) {
	assert.NoError(t, NewCallbackServer(Config{}, &mockHandler{}).Stop())
}
