package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
)

// Ensure StatusPanel implements the interface.
var _ driving.StatusPanel = (*StatusPanel)(nil)

// StatusPanel tracks the integration status shown to the user and runs the
// connect and disconnect actions.
type StatusPanel struct {
	api     driven.IntegrationAPI
	opener  driven.BrowserOpener
	confirm driven.Confirmer
	text    driven.Localizer
	life    lifetime

	mu   sync.Mutex
	snap domain.PanelSnapshot
}

// NewStatusPanel creates a panel in the loading state.
// Opener and confirmer may be nil: without an opener the URL is only
// returned, without a confirmer every disconnect is declined.
func NewStatusPanel(
	api driven.IntegrationAPI,
	opener driven.BrowserOpener,
	confirm driven.Confirmer,
	text driven.Localizer,
) *StatusPanel {
	return &StatusPanel{
		api:     api,
		opener:  opener,
		confirm: confirm,
		text:    localizerOrKeys(text),
		life:    newLifetime(),
		snap:    domain.PanelSnapshot{State: domain.PanelLoading},
	}
}

// Mount fetches the status and settles into connected or not_connected.
func (p *StatusPanel) Mount(ctx context.Context) error {
	p.mu.Lock()
	if p.life.closed() {
		p.mu.Unlock()
		return domain.ErrClosed
	}
	p.snap.State = domain.PanelLoading
	p.mu.Unlock()

	return p.refresh(ctx)
}

// refresh fetches the status and settles. Callers hold no lock.
func (p *StatusPanel) refresh(ctx context.Context) error {
	reqCtx, done := p.life.bind(ctx)
	defer done()

	status, err := p.api.Status(reqCtx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.life.closed() {
		return domain.ErrClosed
	}
	if err != nil {
		logger.Debug("panel: status failed: %v", err)
		p.snap.State = domain.PanelNotConnected
		p.snap.Status = nil
		p.setError(err, KeyStatusLoadFailed)
		return err
	}
	p.settle(status)
	return nil
}

func (p *StatusPanel) settle(status *domain.IntegrationStatus) {
	copied := *status
	p.snap.Status = &copied
	if status.Connected {
		p.snap.State = domain.PanelConnected
	} else {
		p.snap.State = domain.PanelNotConnected
	}
}

// Connect fetches the authorization URL and opens it.
func (p *StatusPanel) Connect(ctx context.Context) (string, error) {
	p.mu.Lock()
	if p.life.closed() {
		p.mu.Unlock()
		return "", domain.ErrClosed
	}
	if p.snap.Connecting || p.snap.Disconnecting {
		p.mu.Unlock()
		return "", domain.ErrOperationInProgress
	}
	p.snap.Connecting = true
	p.clearError()
	p.mu.Unlock()

	reqCtx, done := p.life.bind(ctx)
	authURL, err := p.api.AuthURL(reqCtx)
	done()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.life.closed() {
		return "", domain.ErrClosed
	}
	if err != nil {
		p.snap.Connecting = false
		p.setError(err, KeyAuthURLFailed)
		return "", err
	}

	if p.opener != nil {
		if err := p.opener.Open(authURL); err != nil {
			p.snap.Connecting = false
			p.setError(err, KeyAuthURLFailed)
			return authURL, fmt.Errorf("open browser: %w", err)
		}
	}
	logger.Debug("panel: redirected to provider")
	return authURL, nil
}

// AbortConnect leaves the connecting sub-state. A non-nil err is shown.
func (p *StatusPanel) AbortConnect(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.snap.Connecting = false
	if err != nil {
		p.setError(err, KeyConnectFailed)
	}
}

// Disconnect asks for confirmation, disconnects and refetches the status.
// A declined prompt returns domain.ErrDisconnectNotConfirmed without
// touching the server.
func (p *StatusPanel) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	if p.life.closed() {
		p.mu.Unlock()
		return domain.ErrClosed
	}
	if p.snap.Connecting || p.snap.Disconnecting {
		p.mu.Unlock()
		return domain.ErrOperationInProgress
	}
	p.snap.Disconnecting = true
	p.mu.Unlock()

	if p.confirm == nil || !p.confirm.Confirm(ctx, p.text.Text(KeyDisconnectPrompt)) {
		p.mu.Lock()
		p.snap.Disconnecting = false
		p.mu.Unlock()
		return domain.ErrDisconnectNotConfirmed
	}

	p.mu.Lock()
	p.clearError()
	p.mu.Unlock()

	reqCtx, done := p.life.bind(ctx)
	err := p.api.Disconnect(reqCtx)
	done()

	p.mu.Lock()
	if p.life.closed() {
		p.mu.Unlock()
		return domain.ErrClosed
	}
	if err != nil {
		p.snap.Disconnecting = false
		p.setError(err, KeyDisconnectFailed)
		p.mu.Unlock()
		return err
	}
	p.snap.State = domain.PanelLoading
	p.mu.Unlock()

	err = p.refresh(ctx)

	p.mu.Lock()
	p.snap.Disconnecting = false
	p.mu.Unlock()
	return err
}

// DismissError clears the error slot.
func (p *StatusPanel) DismissError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearError()
}

// Snapshot returns a copy of the observable state.
func (p *StatusPanel) Snapshot() domain.PanelSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := p.snap
	if p.snap.Status != nil {
		status := *p.snap.Status
		snap.Status = &status
	}
	return snap
}

// Close cancels in-flight requests. Results arriving later are discarded.
func (p *StatusPanel) Close() {
	p.life.cancel()
}

func (p *StatusPanel) setError(err error, fallbackKey string) {
	p.snap.Err = err
	p.snap.Error = Describe(p.text, err, fallbackKey)
}

func (p *StatusPanel) clearError() {
	p.snap.Err = nil
	p.snap.Error = ""
}
