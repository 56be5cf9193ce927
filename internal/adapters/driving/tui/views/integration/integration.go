// Package integration provides the Google Drive status panel view for the TUI.
package integration

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
	"github.com/custodia-labs/drivelink-cli/internal/i18n"
)

// View renders a status panel and turns keys into panel operations.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	text    driven.Localizer
	flows   driving.Flows
	surface driving.Surface
	ctx     context.Context

	panel   driving.StatusPanel
	spinner spinner.Model
	authURL string
	notice  string
	pending *messages.ConfirmRequested

	width  int
	height int
	ready  bool
}

// NewView creates a new integration view. A fresh panel is mounted on Init.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	text driven.Localizer,
	flows driving.Flows,
	surface driving.Surface,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Warning

	return &View{
		styles:  s,
		keymap:  km,
		text:    text,
		flows:   flows,
		surface: surface,
		ctx:     context.Background(),
		spinner: sp,
	}
}

// SetContext sets the context panel operations run under.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init replaces the panel with a fresh one and mounts it.
func (v *View) Init() tea.Cmd {
	v.Close()
	v.panel = v.flows.StatusPanel(v.surface)
	v.authURL = ""
	v.notice = ""
	return tea.Batch(v.spinner.Tick, v.mount())
}

// Close releases the current panel. Results of in-flight calls are discarded.
func (v *View) Close() {
	v.answer(false)
	if v.panel != nil {
		v.panel.Close()
	}
}

func (v *View) mount() tea.Cmd {
	panel, ctx := v.panel, v.ctx
	return func() tea.Msg {
		return messages.PanelUpdated{Err: panel.Mount(ctx)}
	}
}

func (v *View) connect() tea.Cmd {
	panel, ctx := v.panel, v.ctx
	return func() tea.Msg {
		authURL, err := panel.Connect(ctx)
		return messages.AuthURLReady{URL: authURL, Err: err}
	}
}

func (v *View) disconnect() tea.Cmd {
	panel, ctx := v.panel, v.ctx
	return func() tea.Msg {
		return messages.PanelUpdated{Err: panel.Disconnect(ctx)}
	}
}

// Update handles messages for the integration view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.ConfirmRequested:
		v.answer(false)
		v.pending = &msg
		return v, nil

	case messages.AuthURLReady:
		if msg.Err == nil {
			v.authURL = msg.URL
		}
		return v, nil

	case messages.PanelUpdated:
		if errors.Is(msg.Err, domain.ErrDisconnectNotConfirmed) {
			v.notice = v.text.Text(i18n.KeyPanelCancelled)
		}
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.panel == nil {
		return v, nil
	}

	key := msg.String()

	if v.pending != nil {
		v.answer(keymap.Matches(key, v.keymap.Confirm))
		return v, nil
	}

	v.notice = ""
	snap := v.panel.Snapshot()

	switch {
	case keymap.Matches(key, v.keymap.Back):
		if snap.Connecting {
			v.panel.AbortConnect(nil)
			v.authURL = ""
			return v, nil
		}
		return v, changeView(messages.ViewMenu)

	case keymap.Matches(key, v.keymap.Connect):
		if snap.State != domain.PanelNotConnected || snap.Connecting {
			return v, nil
		}
		return v, v.connect()

	case keymap.Matches(key, v.keymap.Select):
		if snap.Connecting {
			return v, changeView(messages.ViewCallback)
		}

	case keymap.Matches(key, v.keymap.Disconnect):
		if snap.State != domain.PanelConnected || snap.Disconnecting {
			return v, nil
		}
		return v, v.disconnect()

	case keymap.Matches(key, v.keymap.Refresh):
		if snap.State == domain.PanelLoading || snap.Connecting || snap.Disconnecting {
			return v, nil
		}
		return v, v.mount()

	case keymap.Matches(key, v.keymap.Folders):
		return v, changeView(messages.ViewWizard)

	case keymap.Matches(key, v.keymap.Dismiss):
		v.panel.DismissError()
	}

	return v, nil
}

// answer replies to the pending question, if any.
func (v *View) answer(yes bool) {
	if v.pending == nil {
		return
	}
	v.pending.Reply <- yes
	v.pending = nil
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// View renders the panel.
func (v *View) View() string {
	if !v.ready || v.panel == nil {
		return "Initialising..."
	}

	snap := v.panel.Snapshot()
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.text.Text(i18n.KeyPanelTitle)))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.text.Text(i18n.KeyPanelDescription)))
	b.WriteString("\n\n")

	switch snap.State {
	case domain.PanelLoading:
		b.WriteString(v.spinner.View() + " " + v.text.Text(i18n.KeyPanelLoading))
	case domain.PanelConnected:
		b.WriteString(v.styles.Success.Render(v.connectedLine(snap.Status)))
	case domain.PanelNotConnected:
		b.WriteString(v.styles.Normal.Render(v.text.Text(i18n.KeyPanelNotConnected)))
	}
	b.WriteString("\n")

	if snap.Connecting {
		b.WriteString("\n" + v.spinner.View() + " " + v.text.Text(i18n.KeyPanelConnecting) + "\n")
		if v.authURL != "" {
			b.WriteString(v.styles.Muted.Render(v.text.Text(i18n.KeyPanelOpenURL)) + "\n")
			b.WriteString(v.styles.Link.Render(v.authURL) + "\n")
			b.WriteString(v.styles.Muted.Render(v.text.Text(i18n.KeyPanelWaiting)) + "\n")
		}
	}
	if snap.Disconnecting {
		b.WriteString("\n" + v.spinner.View() + " " + v.text.Text(i18n.KeyPanelDisconnecting) + "\n")
	}

	if v.pending != nil {
		b.WriteString("\n" + v.styles.Warning.Render(v.pending.Prompt) + "\n")
		b.WriteString(v.styles.Muted.Render(v.text.Text(i18n.KeyTUIConfirmDisconnect)) + "\n")
	}
	if v.notice != "" {
		b.WriteString("\n" + v.styles.Muted.Render(v.notice) + "\n")
	}
	if snap.Error != "" {
		b.WriteString("\n" + v.styles.Error.Render(snap.Error) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(v.text.Text(i18n.KeyTUIHelpPanel)))

	return v.styles.Panel.Render(b.String())
}

func (v *View) connectedLine(status *domain.IntegrationStatus) string {
	if status != nil && status.Email != "" {
		return v.text.Text(i18n.KeyPanelConnectedAs, status.Email)
	}
	return v.text.Text(i18n.KeyPanelConnected)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Snapshot returns the current panel state.
func (v *View) Snapshot() domain.PanelSnapshot {
	if v.panel == nil {
		return domain.PanelSnapshot{State: domain.PanelLoading}
	}
	return v.panel.Snapshot()
}

// AuthURL returns the last authorization URL shown.
func (v *View) AuthURL() string {
	return v.authURL
}

// Confirming reports whether a question is waiting for an answer.
func (v *View) Confirming() bool {
	return v.pending != nil
}
