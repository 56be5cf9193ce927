package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
)

// Ensure FolderWizard implements the interface.
var _ driving.FolderWizard = (*FolderWizard)(nil)

// DefaultCompletionDelay is how long the success view is shown before the
// completion callback runs.
const DefaultCompletionDelay = 1500 * time.Millisecond

// FolderWizard is the folder step of the channel creation wizard.
type FolderWizard struct {
	folders    driving.FolderService
	status     driven.IntegrationsStatusProvider
	text       driven.Localizer
	delay      time.Duration
	onComplete func(domain.ProvisionedFolders)
	deferred   *Deferred
	life       lifetime

	mu         sync.Mutex
	name       string
	uuid       string
	generating bool
	result     *domain.ProvisionedFolders
	errText    string
	err        error
}

// WizardConfig holds the dependencies of a FolderWizard.
type WizardConfig struct {
	Folders    driving.FolderService
	Status     driven.IntegrationsStatusProvider
	Clock      driven.Clock
	Text       driven.Localizer
	Delay      time.Duration
	OnComplete func(domain.ProvisionedFolders)
}

// NewFolderWizard creates a wizard step for one channel.
func NewFolderWizard(cfg WizardConfig, channelName, channelUUID string) *FolderWizard {
	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultCompletionDelay
	}
	return &FolderWizard{
		folders:    cfg.Folders,
		status:     cfg.Status,
		text:       localizerOrKeys(cfg.Text),
		delay:      delay,
		onComplete: cfg.OnComplete,
		deferred:   NewDeferred(cfg.Clock),
		life:       newLifetime(),
		name:       channelName,
		uuid:       channelUUID,
	}
}

// Generate runs one folder-generation attempt. Once folders exist further
// calls are no-ops.
func (w *FolderWizard) Generate(ctx context.Context) error {
	w.mu.Lock()
	if w.life.closed() {
		w.mu.Unlock()
		return domain.ErrClosed
	}
	if w.generating {
		w.mu.Unlock()
		return domain.ErrOperationInProgress
	}
	if w.result != nil {
		w.mu.Unlock()
		return nil
	}
	if w.folders == nil {
		w.mu.Unlock()
		return domain.ErrNotConfigured
	}
	w.generating = true
	w.clearError()
	req := domain.FolderRequest{ChannelName: w.name, ChannelUUID: w.uuid}
	w.mu.Unlock()

	reqCtx, done := w.life.bind(ctx)
	folders, err := w.folders.Generate(reqCtx, req)
	done()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.life.closed() {
		return domain.ErrClosed
	}
	w.generating = false

	if err != nil {
		// A loading status source only disables the control.
		if !errors.Is(err, domain.ErrOperationInProgress) {
			w.err = err
			w.errText = Describe(w.text, err, KeyFoldersFailed)
		}
		return err
	}

	w.result = folders
	if w.onComplete != nil {
		pair := *folders
		w.deferred.Schedule(w.delay, func() { w.onComplete(pair) })
	}
	return nil
}

// SetChannel updates the channel the step provisions for.
func (w *FolderWizard) SetChannel(name, uuid string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.name = name
	w.uuid = uuid
}

// DismissError clears the error slot.
func (w *FolderWizard) DismissError() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clearError()
}

// Snapshot returns a copy of the observable state, consulting the status
// source for the Drive gate.
func (w *FolderWizard) Snapshot(ctx context.Context) domain.WizardSnapshot {
	var drive domain.ProviderStatus
	if w.status != nil {
		drive = w.status.GoogleDrive(ctx)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	snap := domain.WizardSnapshot{
		ChannelName:   w.name,
		ChannelUUID:   w.uuid,
		StatusLoading: drive.Loading,
		Error:         w.errText,
		Err:           w.err,
	}
	switch {
	case w.result != nil:
		folders := *w.result
		snap.Folders = &folders
		snap.State = domain.WizardSuccess
	case w.generating:
		snap.State = domain.WizardGenerating
	case !drive.Loading && !drive.Connected:
		snap.State = domain.WizardBlocked
	default:
		snap.State = domain.WizardIdle
	}
	return snap
}

// CompletionPending reports whether the completion callback is scheduled.
func (w *FolderWizard) CompletionPending() bool {
	return w.deferred.Pending()
}

// Close cancels the pending completion callback and in-flight requests.
func (w *FolderWizard) Close() {
	w.life.cancel()
	w.deferred.Cancel()
}

func (w *FolderWizard) clearError() {
	w.err = nil
	w.errText = ""
}
