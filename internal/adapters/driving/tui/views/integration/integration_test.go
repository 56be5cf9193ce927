package integration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/clock"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
	"github.com/custodia-labs/drivelink-cli/internal/core/services"
	"github.com/custodia-labs/drivelink-cli/internal/i18n"
)

// mockAPI implements driven.IntegrationAPI for testing.
type mockAPI struct {
	mu              sync.Mutex
	connected       bool
	statusErr       error
	disconnectCalls int
}

func (m *mockAPI) Status(context.Context) (*domain.IntegrationStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	if m.connected {
		return &domain.IntegrationStatus{Connected: true, Email: "user@example.com"}, nil
	}
	return &domain.IntegrationStatus{}, nil
}

func (m *mockAPI) AuthURL(context.Context) (string, error) {
	return "https://accounts.google.com/o/oauth2/auth?state=x", nil
}

func (m *mockAPI) ConfirmCode(context.Context, string) (*domain.IntegrationStatus, error) {
	return &domain.IntegrationStatus{Connected: true}, nil
}

func (m *mockAPI) Disconnect(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disconnectCalls++
	m.connected = false
	return nil
}

// mockOpener implements driven.BrowserOpener for testing.
type mockOpener struct {
	opened []string
}

func (m *mockOpener) Open(url string) error {
	m.opened = append(m.opened, url)
	return nil
}

// chanConfirmer forwards questions the way the app bridge does.
type chanConfirmer struct {
	requests chan messages.ConfirmRequested
}

func (c *chanConfirmer) Confirm(ctx context.Context, prompt string) bool {
	reply := make(chan bool, 1)
	c.requests <- messages.ConfirmRequested{Prompt: prompt, Reply: reply}
	select {
	case yes := <-reply:
		return yes
	case <-ctx.Done():
		return false
	}
}

// keyText renders keys verbatim so assertions do not depend on catalogs.
type keyText struct{}

func (keyText) Text(key string, args ...any) string {
	if len(args) > 0 {
		return "t:" + key + ":" + fmt.Sprint(args[0])
	}
	return "t:" + key
}

type fixture struct {
	api     *mockAPI
	opener  *mockOpener
	confirm *chanConfirmer
	view    *View
}

func newFixture(connected bool) *fixture {
	f := &fixture{
		api:     &mockAPI{connected: connected},
		opener:  &mockOpener{},
		confirm: &chanConfirmer{requests: make(chan messages.ConfirmRequested, 1)},
	}
	flows := services.NewFlows(services.FlowsConfig{API: f.api, Clock: clock.NewManual(), Text: keyText{}})
	f.view = NewView(nil, nil, keyText{}, flows, driving.Surface{Opener: f.opener, Confirmer: f.confirm})
	f.view.SetDimensions(120, 40)
	return f
}

// drain runs cmd and every command it batches, returning the messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds every message produced by cmd back into the view.
func (f *fixture) settle(cmd tea.Cmd) {
	for _, msg := range drain(cmd) {
		f.view.Update(msg)
	}
}

func press(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestView_InitMounts(t *testing.T) {
	f := newFixture(true)

	assert.Equal(t, domain.PanelLoading, f.view.Snapshot().State)
	f.settle(f.view.Init())

	assert.Equal(t, domain.PanelConnected, f.view.Snapshot().State)
	assert.Contains(t, f.view.View(), "t:"+i18n.KeyPanelConnectedAs+":user@example.com")
}

func TestView_ConnectShowsURL(t *testing.T) {
	f := newFixture(false)
	f.settle(f.view.Init())
	require.Equal(t, domain.PanelNotConnected, f.view.Snapshot().State)

	_, cmd := f.view.Update(press("c"))
	f.settle(cmd)

	assert.True(t, f.view.Snapshot().Connecting)
	assert.Equal(t, []string{"https://accounts.google.com/o/oauth2/auth?state=x"}, f.opener.opened)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?state=x", f.view.AuthURL())
	assert.Contains(t, f.view.View(), "t:"+i18n.KeyPanelOpenURL)

	_, cmd = f.view.Update(press("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewCallback}, cmd())
}

func TestView_EscAbortsConnecting(t *testing.T) {
	f := newFixture(false)
	f.settle(f.view.Init())
	_, cmd := f.view.Update(press("c"))
	f.settle(cmd)

	_, cmd = f.view.Update(press("esc"))

	assert.Nil(t, cmd)
	assert.False(t, f.view.Snapshot().Connecting)
	assert.Empty(t, f.view.AuthURL())

	_, cmd = f.view.Update(press("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_ConnectIgnoredWhenConnected(t *testing.T) {
	f := newFixture(true)
	f.settle(f.view.Init())

	_, cmd := f.view.Update(press("c"))

	assert.Nil(t, cmd)
	assert.Empty(t, f.opener.opened)
}

func TestView_Disconnect(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		wantCalls int
		wantState domain.PanelState
	}{
		{"confirmed", "y", 1, domain.PanelNotConnected},
		{"declined", "n", 0, domain.PanelConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(true)
			f.settle(f.view.Init())

			_, cmd := f.view.Update(press("d"))
			require.NotNil(t, cmd)
			result := make(chan tea.Msg, 1)
			go func() { result <- cmd() }()

			f.view.Update(<-f.confirm.requests)
			require.True(t, f.view.Confirming())
			assert.Contains(t, f.view.View(), "t:"+services.KeyDisconnectPrompt)

			f.view.Update(press(tt.answer))
			assert.False(t, f.view.Confirming())
			f.view.Update(<-result)

			assert.Equal(t, tt.wantCalls, f.api.disconnectCalls)
			assert.Equal(t, tt.wantState, f.view.Snapshot().State)
			if tt.answer != "y" {
				assert.Contains(t, f.view.View(), "t:"+i18n.KeyPanelCancelled)
			}
		})
	}
}

func TestView_CloseAnswersPendingQuestion(t *testing.T) {
	f := newFixture(true)
	f.settle(f.view.Init())
	_, cmd := f.view.Update(press("d"))
	result := make(chan tea.Msg, 1)
	go func() { result <- cmd() }()
	f.view.Update(<-f.confirm.requests)

	f.view.Close()

	msg := (<-result).(messages.PanelUpdated)
	assert.True(t, errors.Is(msg.Err, domain.ErrDisconnectNotConfirmed) || errors.Is(msg.Err, domain.ErrClosed))
	assert.Equal(t, 0, f.api.disconnectCalls)
}

func TestView_DismissError(t *testing.T) {
	f := newFixture(false)
	f.api.statusErr = errors.New("connection refused")
	f.settle(f.view.Init())
	require.NotEmpty(t, f.view.Snapshot().Error)

	f.view.Update(press("x"))

	assert.Empty(t, f.view.Snapshot().Error)
}

func TestView_Refresh(t *testing.T) {
	f := newFixture(false)
	f.settle(f.view.Init())

	f.api.connected = true
	_, cmd := f.view.Update(press("r"))
	f.settle(cmd)

	assert.Equal(t, domain.PanelConnected, f.view.Snapshot().State)
}

func TestView_FoldersKey(t *testing.T) {
	f := newFixture(true)
	f.settle(f.view.Init())

	_, cmd := f.view.Update(press("f"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewWizard}, cmd())
}

func TestView_NotReady(t *testing.T) {
	flows := services.NewFlows(services.FlowsConfig{API: &mockAPI{}, Clock: clock.NewManual()})
	view := NewView(nil, nil, keyText{}, flows, driving.Surface{})

	assert.Equal(t, "Initialising...", view.View())
	_, cmd := view.Update(press("c"))
	assert.Nil(t, cmd)
}
