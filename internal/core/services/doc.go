// Package services implements the driving port interfaces.
// Services contain the integration flows and orchestrate
// calls to driven ports (adapters).
//
// The three UI flows (status panel, OAuth callback, folder wizard) are
// state machines guarded by a mutex. Each owns a lifetime that Close
// cancels; results arriving after Close are discarded.
package services
