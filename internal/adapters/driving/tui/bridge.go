package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
)

var (
	_ driven.Navigator = (*bridge)(nil)
	_ driven.Confirmer = (*bridge)(nil)
)

// bridge turns calls made by the flows on their own goroutines into
// messages for the Bubbletea loop.
type bridge struct {
	events chan tea.Msg
	done   chan struct{}
	once   sync.Once
}

func newBridge() *bridge {
	return &bridge{
		events: make(chan tea.Msg, 16),
		done:   make(chan struct{}),
	}
}

func (b *bridge) send(msg tea.Msg) bool {
	select {
	case b.events <- msg:
		return true
	case <-b.done:
		return false
	}
}

// Navigate implements driven.Navigator.
func (b *bridge) Navigate(route string) {
	b.send(messages.Navigated{Route: route})
}

// Confirm implements driven.Confirmer. It blocks until the user answers,
// ctx is done or the program exits.
func (b *bridge) Confirm(ctx context.Context, prompt string) bool {
	reply := make(chan bool, 1)
	select {
	case b.events <- messages.ConfirmRequested{Prompt: prompt, Reply: reply}:
	case <-ctx.Done():
		return false
	case <-b.done:
		return false
	}

	select {
	case yes := <-reply:
		return yes
	case <-ctx.Done():
		return false
	case <-b.done:
		return false
	}
}

func (b *bridge) provisioned(folders domain.ProvisionedFolders) {
	b.send(messages.FoldersProvisioned{Folders: folders})
}

// listen waits for the next event. Re-issue it after every event.
func (b *bridge) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.events:
			return msg
		case <-b.done:
			return nil
		}
	}
}

func (b *bridge) close() {
	b.once.Do(func() { close(b.done) })
}
