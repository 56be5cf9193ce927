// Package browser hands URLs to the user's web browser.
package browser

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
)

var (
	_ driven.BrowserOpener = (*System)(nil)
	_ driven.BrowserOpener = (*Printer)(nil)
)

// System opens URLs with the platform's default browser.
type System struct {
	goos  string
	start func(name string, args ...string) error
}

// NewSystem creates an opener for the running platform.
func NewSystem() *System {
	return &System{goos: runtime.GOOS, start: startCommand}
}

// Open launches the browser without waiting for it to exit.
func (s *System) Open(url string) error {
	name, args, err := command(s.goos, url)
	if err != nil {
		return err
	}
	return s.start(name, args...)
}

func command(goos, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Printer writes the URL for the user to open by hand.
type Printer struct {
	w      io.Writer
	prefix string
}

// NewPrinter creates an opener that prints prefix followed by the URL.
func NewPrinter(w io.Writer, prefix string) *Printer {
	return &Printer{w: w, prefix: prefix}
}

// Open prints the URL.
func (p *Printer) Open(url string) error {
	_, err := fmt.Fprintf(p.w, "%s%s\n", p.prefix, url)
	return err
}

// Fallback tries Primary and, if it fails, Secondary.
type Fallback struct {
	Primary   driven.BrowserOpener
	Secondary driven.BrowserOpener
}

// Open implements driven.BrowserOpener.
func (f Fallback) Open(url string) error {
	err := f.Primary.Open(url)
	if err == nil {
		return nil
	}
	if f.Secondary == nil {
		return err
	}
	if serr := f.Secondary.Open(url); serr != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
