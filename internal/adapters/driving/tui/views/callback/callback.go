// Package callback provides the view that completes a Google Drive
// connection from a pasted authorization redirect URL.
package callback

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/oauth"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
	"github.com/custodia-labs/drivelink-cli/internal/i18n"
)

// View collects a redirect URL and shows the callback handler's progress.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	text    driven.Localizer
	flows   driving.Flows
	surface driving.Surface
	ctx     context.Context

	handler   driving.CallbackHandler
	field     *input.Field
	spinner   spinner.Model
	submitted bool
	inputErr  string

	width  int
	height int
	ready  bool
}

// NewView creates a new callback view.
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
		field:   input.NewField(s, text.Text(i18n.KeyTUIRedirectURL), "http://127.0.0.1:8765/google-drive/callback?code=...", 2048),
		spinner: sp,
	}
}

// SetContext sets the context the confirmation runs under.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init creates a fresh handler and focuses the URL field.
func (v *View) Init() tea.Cmd {
	v.Close()
	v.handler = v.flows.CallbackHandler(v.surface)
	v.submitted = false
	v.inputErr = ""
	v.field.Reset()
	return tea.Batch(v.field.Focus(), v.field.Init(), v.spinner.Tick)
}

// Close cancels the pending navigation and any in-flight confirmation.
func (v *View) Close() {
	if v.handler != nil {
		v.handler.Close()
	}
}

// Update handles messages for the callback view.
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

	case messages.CallbackHandled:
		return v, nil
	}

	if !v.submitted {
		var cmd tea.Cmd
		v.field, cmd = v.field.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.handler == nil {
		return v, nil
	}
	key := msg.String()

	if keymap.Matches(key, v.keymap.Back) {
		v.Close()
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewIntegration} }
	}

	if v.submitted {
		if keymap.Matches(key, v.keymap.Select) && v.handler.Snapshot().State != domain.CallbackLoading {
			handler := v.handler
			return v, func() tea.Msg {
				handler.ReturnToSettings()
				return nil
			}
		}
		return v, nil
	}

	if keymap.Matches(key, v.keymap.Select) {
		params, err := oauth.ParseRedirect(v.field.Value())
		if err != nil {
			v.inputErr = err.Error()
			return v, nil
		}
		v.inputErr = ""
		v.submitted = true
		v.field.Blur()
		handler, ctx := v.handler, v.ctx
		return v, func() tea.Msg {
			return messages.CallbackHandled{Err: handler.Handle(ctx, params)}
		}
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

// View renders the field or the handler state.
func (v *View) View() string {
	if !v.ready || v.handler == nil {
		return "Initialising..."
	}

	var b strings.Builder

	if !v.submitted {
		b.WriteString(v.styles.Title.Render(v.text.Text(i18n.KeyPanelTitle)))
		b.WriteString("\n\n")
		b.WriteString(v.field.View())
		b.WriteString("\n")
		if v.inputErr != "" {
			b.WriteString(v.styles.Error.Render(v.inputErr) + "\n")
		}
		b.WriteString("\n" + v.styles.Help.Render(v.text.Text(i18n.KeyTUIHelpCallback)))
		return v.styles.Panel.Render(b.String())
	}

	snap := v.handler.Snapshot()
	switch snap.State {
	case domain.CallbackLoading:
		b.WriteString(v.spinner.View() + " " + v.styles.Title.Render(v.text.Text(i18n.KeyCallbackTitle)))
		b.WriteString("\n" + v.styles.Muted.Render(v.text.Text(i18n.KeyCallbackWait)))

	case domain.CallbackSuccess:
		b.WriteString(v.styles.Success.Render(v.text.Text(i18n.KeyCallbackSuccess)))
		if snap.Status != nil && snap.Status.Email != "" {
			b.WriteString("\n" + v.text.Text(i18n.KeyCallbackSuccessAs, snap.Status.Email))
		}
		b.WriteString("\n" + v.styles.Muted.Render(v.text.Text(i18n.KeyCallbackRedirecting)))

	case domain.CallbackError:
		b.WriteString(v.styles.Error.Render(v.text.Text(i18n.KeyCallbackErrorTitle)))
		b.WriteString("\n" + snap.Error)
		b.WriteString("\n\n" + v.styles.Subtitle.Render("[enter] "+v.text.Text(i18n.KeyCallbackReturn)))
	}

	b.WriteString("\n\n" + v.styles.Help.Render(v.text.Text(i18n.KeyTUIHelpCallback)))
	return v.styles.Panel.Render(b.String())
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.field.SetWidth(width - 6)
}

// Submitted reports whether a redirect URL was handed to the handler.
func (v *View) Submitted() bool {
	return v.submitted
}

// Snapshot returns the handler state.
func (v *View) Snapshot() domain.CallbackSnapshot {
	if v.handler == nil {
		return domain.CallbackSnapshot{State: domain.CallbackLoading}
	}
	return v.handler.Snapshot()
}

// SetValue fills the URL field.
func (v *View) SetValue(raw string) {
	v.field.SetValue(raw)
}
