// Package terminal implements interactive prompts on the controlling terminal.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
)

var (
	_ driven.Confirmer = (*Prompter)(nil)
	_ driven.Confirmer = AssumeYes{}
)

// Prompter asks questions on a terminal. When input is not a terminal,
// confirmations are declined rather than read from a pipe.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	isTerm func(fd int) bool
	readPw func(fd int) ([]byte, error)
}

// NewPrompter creates a prompter reading from in and writing to out.
func NewPrompter(in *os.File, out io.Writer) *Prompter {
	return &Prompter{
		in:     bufio.NewReader(in),
		out:    out,
		fd:     int(in.Fd()),
		isTerm: term.IsTerminal,
		readPw: term.ReadPassword,
	}
}

// Interactive reports whether input comes from a terminal.
func (p *Prompter) Interactive() bool {
	return p.isTerm(p.fd)
}

// Confirm prints prompt and returns true only for an explicit yes.
func (p *Prompter) Confirm(ctx context.Context, prompt string) bool {
	if ctx.Err() != nil || !p.Interactive() {
		return false
	}
	_, _ = fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return isYes(line)
}

// ReadSecret prints prompt and reads a line without echo when possible.
func (p *Prompter) ReadSecret(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.out, prompt)
	if p.Interactive() {
		secret, err := p.readPw(p.fd)
		_, _ = fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		return strings.TrimSpace(string(secret)), nil
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "д", "да":
		return true
	default:
		return false
	}
}

// AssumeYes confirms everything. It backs --yes flags.
type AssumeYes struct{}

// Confirm always returns true.
func (AssumeYes) Confirm(context.Context, string) bool { return true }
