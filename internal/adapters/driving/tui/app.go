package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/views/callback"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/views/integration"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/views/wizard"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	bridge *bridge
	bar    *status.Bar

	menuView        *menu.View
	integrationView *integration.View
	callbackView    *callback.View
	wizardView      *wizard.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error reported by a flow.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingFlows)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	b := newBridge()

	panelSurface := driving.Surface{Opener: ports.Opener, Confirmer: b, Navigator: b}
	callbackSurface := driving.Surface{Navigator: b}

	wizardView := wizard.NewView(s, km, wizard.Config{
		Flows:         ports.Flows,
		Text:          ports.Text,
		Folders:       ports.Folders,
		RefreshStatus: ports.RefreshStatus,
		OnComplete:    b.provisioned,
	})
	wizardView.SetChannel(ports.ChannelName, ports.ChannelUUID)

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keymap:          km,
		bridge:          b,
		bar:             status.NewBar(s, km),
		menuView:        menu.NewView(s, km),
		integrationView: integration.NewView(s, km, ports.Text, ports.Flows, panelSurface),
		callbackView:    callback.NewView(s, km, ports.Text, ports.Flows, callbackSurface),
		wizardView:      wizardView,
		currentView:     messages.ViewMenu,
	}, nil
}

// WithContext sets the context flows run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.integrationView.SetContext(ctx)
	a.callbackView.SetContext(ctx)
	a.wizardView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("drivelink - Google Drive"),
		a.bridge.listen(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	a.syncBar()
	return a, cmd
}

//nolint:gocyclo // central message handler
func (a *App) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a.changeView(msg.View)

	case messages.Navigated:
		logger.Debug("tui: navigate to %s", msg.Route)
		return tea.Batch(a.bridge.listen(), a.changeView(messages.ViewIntegration))

	case messages.ConfirmRequested:
		if a.currentView == messages.ViewIntegration {
			a.integrationView, cmd = a.integrationView.Update(msg)
		} else {
			msg.Reply <- false
		}
		return tea.Batch(a.bridge.listen(), cmd)

	case messages.FoldersProvisioned:
		a.wizardView, cmd = a.wizardView.Update(msg)
		return tea.Batch(a.bridge.listen(), cmd)

	case messages.PanelUpdated:
		a.record(msg.Err)
		a.integrationView, cmd = a.integrationView.Update(msg)
		return cmd

	case messages.AuthURLReady:
		a.record(msg.Err)
		a.integrationView, cmd = a.integrationView.Update(msg)
		return cmd

	case messages.CallbackHandled:
		a.record(msg.Err)
		a.callbackView, cmd = a.callbackView.Update(msg)
		return cmd

	case messages.FoldersGenerated:
		a.record(msg.Err)
		a.wizardView, cmd = a.wizardView.Update(msg)
		return cmd

	case messages.StatusRefreshed:
		a.record(msg.Err)
		a.wizardView, cmd = a.wizardView.Update(msg)
		return cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return nil

	case messages.Quit:
		a.Close()
		return tea.Quit
	}

	return a.forward(msg)
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		a.Close()
		return tea.Quit
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)

	case messages.ViewIntegration:
		if key == "q" && !a.integrationView.Confirming() {
			a.Close()
			return tea.Quit
		}
		a.integrationView, cmd = a.integrationView.Update(msg)

	case messages.ViewCallback:
		a.callbackView, cmd = a.callbackView.Update(msg)

	case messages.ViewWizard:
		a.wizardView, cmd = a.wizardView.Update(msg)

	case messages.ViewHelp:
		switch {
		case keymap.Matches(key, a.keymap.Back):
			return a.changeView(messages.ViewMenu)
		case keymap.Matches(key, a.keymap.Quit):
			a.Close()
			return tea.Quit
		}
	}
	return cmd
}

// forward passes any other message (spinner ticks, cursor blinks) to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewIntegration:
		a.integrationView, cmd = a.integrationView.Update(msg)
	case messages.ViewCallback:
		a.callbackView, cmd = a.callbackView.Update(msg)
	case messages.ViewWizard:
		a.wizardView, cmd = a.wizardView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// changeView closes the flow behind the current view and starts a fresh one
// for the target.
func (a *App) changeView(view messages.ViewType) tea.Cmd {
	a.closeView(a.currentView)
	a.currentView = view
	a.err = nil

	switch view {
	case messages.ViewIntegration:
		return a.integrationView.Init()
	case messages.ViewCallback:
		return a.callbackView.Init()
	case messages.ViewWizard:
		return a.wizardView.Init()
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

func (a *App) closeView(view messages.ViewType) {
	switch view {
	case messages.ViewIntegration:
		a.integrationView.Close()
	case messages.ViewCallback:
		a.callbackView.Close()
	case messages.ViewWizard:
		a.wizardView.Close()
	case messages.ViewMenu, messages.ViewHelp:
	}
}

func (a *App) record(err error) {
	if err != nil {
		logger.Debug("tui: %v", err)
	}
	a.err = err
}

// syncBar mirrors the active flow's state into the status bar.
func (a *App) syncBar() {
	a.bar.Clear()
	a.bar.SetBindings(nil)

	switch a.currentView {
	case messages.ViewIntegration:
		a.bar.SetBindings(a.keymap.PanelHelp())
		snap := a.integrationView.Snapshot()
		switch {
		case snap.Error != "":
			a.bar.SetState(status.StateError, snap.Error)
		case snap.State == domain.PanelLoading || snap.Connecting || snap.Disconnecting:
			a.bar.SetState(status.StateBusy, "")
		case snap.State == domain.PanelConnected && snap.Status != nil && snap.Status.Email != "":
			a.bar.SetState(status.StateReady, snap.Status.Email)
		}

	case messages.ViewCallback:
		if snap := a.callbackView.Snapshot(); a.callbackView.Submitted() {
			switch snap.State {
			case domain.CallbackLoading:
				a.bar.SetState(status.StateBusy, "")
			case domain.CallbackError:
				a.bar.SetState(status.StateError, snap.Error)
			case domain.CallbackSuccess:
			}
		}

	case messages.ViewWizard:
		snap := a.wizardView.Snapshot()
		switch {
		case snap.Error != "":
			a.bar.SetState(status.StateError, snap.Error)
		case snap.State == domain.WizardGenerating || snap.StatusLoading:
			a.bar.SetState(status.StateBusy, "")
		}

	case messages.ViewMenu, messages.ViewHelp:
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewIntegration:
		body = a.integrationView.View()
	case messages.ViewCallback:
		body = a.callbackView.View()
	case messages.ViewWizard:
		body = a.wizardView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}
	return body + "\n" + a.bar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Google Drive:
  c           Connect (opens the authorization URL)
  enter       Paste the redirect URL while connecting
  d           Disconnect (asks for confirmation)
  r           Refresh status
  f           Channel folders
  x           Dismiss error

Channel folders:
  tab         Next field
  enter       Create folders
  ctrl+x      Dismiss error

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	a.Close()
	return err
}

// Close releases every flow and stops the event bridge.
func (a *App) Close() {
	a.integrationView.Close()
	a.callbackView.Close()
	a.wizardView.Close()
	a.bridge.close()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error reported by a flow.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.integrationView.SetDimensions(width, height)
	a.callbackView.SetDimensions(width, height)
	a.wizardView.SetDimensions(width, height)
	a.bar.SetWidth(width)
}
