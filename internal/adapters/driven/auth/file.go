package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
)

// Ensure FileTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*FileTokenProvider)(nil)

// FileTokenProvider reads the token from a file, typically one written by
// another tool that refreshes the session. Watch keeps it current.
type FileTokenProvider struct {
	path string

	mu    sync.RWMutex
	token string

	reloaded chan struct{}
}

// NewFileTokenProvider creates a provider and loads the file once.
// A missing file is not an error; Token reports the token unavailable.
func NewFileTokenProvider(path string) (*FileTokenProvider, error) {
	p := &FileTokenProvider{
		path:     path,
		reloaded: make(chan struct{}, 1),
	}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p, nil
}

// Token returns the most recently loaded token.
func (p *FileTokenProvider) Token(_ context.Context) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.token == "" {
		return "", domain.ErrTokenUnavailable
	}
	return p.token, nil
}

// Path returns the watched file path.
func (p *FileTokenProvider) Path() string {
	return p.path
}

// Reloaded signals after each reload triggered by Watch.
func (p *FileTokenProvider) Reloaded() <-chan struct{} {
	return p.reloaded
}

func (p *FileTokenProvider) load() error {
	data, err := os.ReadFile(p.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read token file: %w", err)
	}
	p.mu.Lock()
	p.token = strings.TrimSpace(string(data))
	p.mu.Unlock()
	return nil
}

// Watch reloads the token whenever the file changes, until ctx is done.
// The parent directory is watched so atomic replacements are seen.
func (p *FileTokenProvider) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(p.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		defer w.Close()
		name := filepath.Clean(p.path)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != name {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
					!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if err := p.load(); err != nil {
					logger.Warn("token file reload failed: %v", err)
					continue
				}
				logger.Debug("token file reloaded: %s", p.path)
				select {
				case p.reloaded <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("token file watcher: %v", err)
			}
		}
	}()
	return nil
}
