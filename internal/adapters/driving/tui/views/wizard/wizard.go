// Package wizard provides the channel folder step for the TUI.
package wizard

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
	"github.com/custodia-labs/drivelink-cli/internal/i18n"
)

// foldersVerifiedMsg carries the Drive-side check of provisioned folders.
type foldersVerifiedMsg struct {
	inspection *domain.FolderInspection
	err        error
}

// Config holds the wizard view dependencies.
type Config struct {
	Flows driving.Flows
	Text  driven.Localizer
	// Folders verifies provisioned folders on Drive. Optional.
	Folders driving.FolderService
	// RefreshStatus reloads the integrations status on Init. Optional.
	RefreshStatus func(ctx context.Context) error
	// OnComplete receives the folders once the completion delay elapsed.
	OnComplete func(domain.ProvisionedFolders)
}

// View edits a channel and runs folder generation for it.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	cfg    Config
	ctx    context.Context

	wizard   driving.FolderWizard
	name     *input.Field
	uuid     *input.Field
	spinner  spinner.Model
	done     *domain.ProvisionedFolders
	verified *foldersVerifiedMsg

	width  int
	height int
	ready  bool
}

// NewView creates a new wizard view.
func NewView(s *styles.Styles, km *keymap.KeyMap, cfg Config) *View {
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
		cfg:     cfg,
		ctx:     context.Background(),
		name:    input.NewField(s, cfg.Text.Text(i18n.KeyTUIChannelName), "", 128),
		uuid:    input.NewField(s, cfg.Text.Text(i18n.KeyTUIChannelUUID), "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx", 36),
		spinner: sp,
	}
}

// SetContext sets the context generation runs under.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init creates a fresh wizard step and refreshes the integrations status.
func (v *View) Init() tea.Cmd {
	v.Close()
	v.wizard = v.cfg.Flows.FolderWizard(v.name.Value(), v.uuid.Value(), v.cfg.OnComplete)
	v.done = nil
	v.verified = nil
	v.uuid.Blur()

	cmds := []tea.Cmd{v.name.Focus(), v.name.Init(), v.spinner.Tick}
	if v.cfg.RefreshStatus != nil {
		refresh, ctx := v.cfg.RefreshStatus, v.ctx
		cmds = append(cmds, func() tea.Msg {
			return messages.StatusRefreshed{Err: refresh(ctx)}
		})
	}
	return tea.Batch(cmds...)
}

// Close cancels the pending completion and in-flight requests.
func (v *View) Close() {
	if v.wizard != nil {
		v.wizard.Close()
	}
}

// Update handles messages for the wizard view.
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

	case messages.FoldersGenerated, messages.StatusRefreshed:
		return v, nil

	case messages.FoldersProvisioned:
		folders := msg.Folders
		v.done = &folders
		return v, v.verify(folders)

	case foldersVerifiedMsg:
		v.verified = &msg
		return v, nil
	}

	return v.updateFocused(msg)
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.wizard == nil {
		return v, nil
	}
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Back):
		v.Close()
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewIntegration} }

	case keymap.Matches(key, v.keymap.NextField):
		if v.name.Focused() {
			v.name.Blur()
			return v, v.uuid.Focus()
		}
		v.uuid.Blur()
		return v, v.name.Focus()

	case keymap.Matches(key, v.keymap.Select):
		return v, v.generate()

	case key == "ctrl+x":
		v.wizard.DismissError()
		return v, nil
	}

	return v.updateFocused(msg)
}

func (v *View) updateFocused(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	if v.uuid.Focused() {
		v.uuid, cmd = v.uuid.Update(msg)
	} else {
		v.name, cmd = v.name.Update(msg)
	}
	return v, cmd
}

func (v *View) generate() tea.Cmd {
	v.wizard.SetChannel(v.name.Value(), v.uuid.Value())
	wizard, ctx := v.wizard, v.ctx
	return func() tea.Msg {
		return messages.FoldersGenerated{Err: wizard.Generate(ctx)}
	}
}

func (v *View) verify(folders domain.ProvisionedFolders) tea.Cmd {
	if v.cfg.Folders == nil {
		return nil
	}
	svc, ctx := v.cfg.Folders, v.ctx
	return func() tea.Msg {
		inspection, err := svc.Verify(ctx, folders)
		return foldersVerifiedMsg{inspection: inspection, err: err}
	}
}

// View renders the step.
func (v *View) View() string {
	if !v.ready || v.wizard == nil {
		return "Initialising..."
	}

	text := v.cfg.Text
	snap := v.wizard.Snapshot(v.ctx)
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(text.Text(i18n.KeyWizardTitle)))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(text.Text(i18n.KeyWizardDescription)))
	b.WriteString("\n\n")

	switch snap.State {
	case domain.WizardBlocked:
		b.WriteString(v.styles.Warning.Render(text.Text(i18n.KeyWizardBlocked)) + "\n")
		b.WriteString(v.styles.Muted.Render(text.Text(i18n.KeyWizardBlockedHint)) + "\n")

	case domain.WizardIdle:
		b.WriteString(v.name.View() + "\n")
		b.WriteString(v.uuid.View() + "\n\n")
		if snap.StatusLoading {
			b.WriteString(v.spinner.View() + " " + text.Text(i18n.KeyWizardStatusLoading) + "\n")
		} else {
			b.WriteString(v.styles.Subtitle.Render("[enter] "+text.Text(i18n.KeyWizardGenerate)) + "\n")
		}

	case domain.WizardGenerating:
		b.WriteString(v.spinner.View() + " " + text.Text(i18n.KeyWizardGenerating) + "\n")

	case domain.WizardSuccess:
		b.WriteString(v.styles.Success.Render(text.Text(i18n.KeyWizardSuccess)) + "\n")
		if snap.Folders != nil {
			b.WriteString(text.Text(i18n.KeyWizardRootFolder, snap.Folders.RootFolderID) + "\n")
			b.WriteString(text.Text(i18n.KeyWizardArchiveFolder, snap.Folders.ArchiveFolderID) + "\n")
		}
		if v.done == nil {
			b.WriteString(v.spinner.View() + " " + v.styles.Muted.Render(text.Text(i18n.KeyWizardFinishing)) + "\n")
		}
		b.WriteString(v.verificationLine())
	}

	if snap.Error != "" {
		b.WriteString("\n" + v.styles.Error.Render(snap.Error) + "\n")
	}

	b.WriteString("\n" + v.styles.Help.Render(text.Text(i18n.KeyTUIHelpWizard)))
	return v.styles.Panel.Render(b.String())
}

func (v *View) verificationLine() string {
	if v.verified == nil {
		return ""
	}
	if v.verified.err != nil || v.verified.inspection == nil || !v.verified.inspection.Healthy() {
		line := v.cfg.Text.Text(i18n.KeyWizardVerifyBad)
		if v.verified.err != nil {
			line += " " + v.verified.err.Error()
		}
		return v.styles.Error.Render(line) + "\n"
	}
	return v.styles.Success.Render(v.cfg.Text.Text(i18n.KeyWizardVerifyOK)) + "\n"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.name.SetWidth(width - 6)
	v.uuid.SetWidth(width - 6)
}

// SetChannel pre-fills the channel fields.
func (v *View) SetChannel(name, uuid string) {
	v.name.SetValue(name)
	v.uuid.SetValue(uuid)
}

// Snapshot returns the wizard state.
func (v *View) Snapshot() domain.WizardSnapshot {
	if v.wizard == nil {
		return domain.WizardSnapshot{State: domain.WizardBlocked}
	}
	return v.wizard.Snapshot(v.ctx)
}

// Provisioned returns the folders delivered by the completion callback.
func (v *View) Provisioned() *domain.ProvisionedFolders {
	return v.done
}
