package driven

import (
	"context"
	"time"
)

// BrowserOpener hands a URL to the user's browser.
type BrowserOpener interface {
	Open(url string) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	// Confirm returns true only on an explicit yes.
	Confirm(ctx context.Context, prompt string) bool
}

// Navigator moves the user to a named route.
type Navigator interface {
	Navigate(route string)
}

// Timer is a pending single-shot action.
type Timer interface {
	// Stop prevents the action from firing. Returns false if it already fired
	// or was already stopped.
	Stop() bool
}

// Clock schedules single-shot actions.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}
