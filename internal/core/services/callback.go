package services

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
)

// Ensure CallbackHandler implements the interface.
var _ driving.CallbackHandler = (*CallbackHandler)(nil)

const (
	// DefaultSettingsRoute is where the callback flow returns the user.
	DefaultSettingsRoute = domain.DefaultSettingsRoute
	// DefaultCallbackDelay is how long the success state is shown before
	// navigating back.
	DefaultCallbackDelay = 2 * time.Second
)

// CallbackOptions tunes the callback handler.
type CallbackOptions struct {
	SettingsRoute string
	Delay         time.Duration
}

func (o CallbackOptions) withDefaults() CallbackOptions {
	if o.SettingsRoute == "" {
		o.SettingsRoute = DefaultSettingsRoute
	}
	if o.Delay <= 0 {
		o.Delay = DefaultCallbackDelay
	}
	return o
}

// CallbackHandler confirms the authorization code from a provider redirect.
type CallbackHandler struct {
	api      driven.IntegrationAPI
	nav      driven.Navigator
	text     driven.Localizer
	opts     CallbackOptions
	deferred *Deferred
	life     lifetime

	mu      sync.Mutex
	handled bool
	snap    domain.CallbackSnapshot
}

// NewCallbackHandler creates a handler in the loading state.
func NewCallbackHandler(
	api driven.IntegrationAPI,
	nav driven.Navigator,
	clock driven.Clock,
	text driven.Localizer,
	opts CallbackOptions,
) *CallbackHandler {
	return &CallbackHandler{
		api:      api,
		nav:      nav,
		text:     localizerOrKeys(text),
		opts:     opts.withDefaults(),
		deferred: NewDeferred(clock),
		life:     newLifetime(),
		snap:     domain.CallbackSnapshot{State: domain.CallbackLoading},
	}
}

// Handle processes the redirect query parameters. Only the first call is
// processed; later calls return domain.ErrOperationInProgress.
func (h *CallbackHandler) Handle(ctx context.Context, params url.Values) error {
	h.mu.Lock()
	if h.life.closed() {
		h.mu.Unlock()
		return domain.ErrClosed
	}
	if h.handled {
		h.mu.Unlock()
		return domain.ErrOperationInProgress
	}
	h.handled = true

	if providerErr := params.Get("error"); providerErr != "" {
		err := &domain.ValidationError{Reason: domain.ReasonProviderError, Detail: providerErr}
		h.fail(err)
		h.mu.Unlock()
		return err
	}
	code := params.Get("code")
	if code == "" {
		err := &domain.ValidationError{Reason: domain.ReasonMissingCode}
		h.fail(err)
		h.mu.Unlock()
		return err
	}
	h.mu.Unlock()

	reqCtx, done := h.life.bind(ctx)
	status, err := h.api.ConfirmCode(reqCtx, code)
	done()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.life.closed() {
		return domain.ErrClosed
	}
	if err != nil {
		h.fail(err)
		return err
	}

	h.snap.State = domain.CallbackSuccess
	if status != nil {
		copied := *status
		h.snap.Status = &copied
	}
	h.deferred.Schedule(h.opts.Delay, h.navigate)
	logger.Debug("callback: confirmed, returning to %s in %s", h.opts.SettingsRoute, h.opts.Delay)
	return nil
}

func (h *CallbackHandler) fail(err error) {
	logger.Debug("callback: %v", err)
	h.snap.State = domain.CallbackError
	h.snap.Err = err
	h.snap.Error = Describe(h.text, err, KeyConnectFailed)
}

// ReturnToSettings navigates back immediately, replacing any scheduled
// navigation.
func (h *CallbackHandler) ReturnToSettings() {
	h.deferred.Cancel()
	h.navigate()
}

func (h *CallbackHandler) navigate() {
	if h.nav != nil {
		h.nav.Navigate(h.opts.SettingsRoute)
	}
}

// Snapshot returns a copy of the observable state.
func (h *CallbackHandler) Snapshot() domain.CallbackSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	snap := h.snap
	if h.snap.Status != nil {
		status := *h.snap.Status
		snap.Status = &status
	}
	return snap
}

// NavigationPending reports whether the automatic navigation is scheduled.
func (h *CallbackHandler) NavigationPending() bool {
	return h.deferred.Pending()
}

// Close cancels the scheduled navigation and any in-flight confirmation.
func (h *CallbackHandler) Close() {
	h.life.cancel()
	h.deferred.Cancel()
}
