// Package oauth receives the OAuth redirect on a loopback HTTP server and
// feeds it to the callback handler.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
	"github.com/custodia-labs/drivelink-cli/internal/i18n"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
)

// DefaultHost is the loopback interface the server binds to.
const DefaultHost = "127.0.0.1"

// ErrTimeout is returned by Wait when no redirect arrives in time.
var ErrTimeout = errors.New("timeout waiting for authorization callback")

// Config configures the callback server.
type Config struct {
	// Host defaults to DefaultHost.
	Host string
	// Port 0 picks a free port.
	Port int
	// Path defaults to domain.DefaultCallbackPath.
	Path string
	// Text renders the result page. Keys are shown as-is when nil.
	Text driven.Localizer
}

// Result is what the first redirect produced.
type Result struct {
	Snapshot domain.CallbackSnapshot
	Err      error
}

// CallbackServer handles the provider redirect.
// Only the first request on the callback path is handed to the handler;
// later requests render the same outcome.
type CallbackServer struct {
	mu       sync.Mutex
	cfg      Config
	handler  driving.CallbackHandler
	server   *http.Server
	listener net.Listener
	once     sync.Once
	done     chan struct{}
	result   Result
}

// NewCallbackServer creates a new callback server for handler.
func NewCallbackServer(cfg Config, handler driving.CallbackHandler) *CallbackServer {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Path == "" {
		cfg.Path = domain.DefaultCallbackPath
	}
	return &CallbackServer{
		cfg:     cfg,
		handler: handler,
		done:    make(chan struct{}),
	}
}

// Start starts listening. If the port is 0, a random available port is chosen.
func (s *CallbackServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Path, s.handleCallback)

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.cfg.Port = tcpAddr.Port
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("callback server stopped: %v", err)
		}
	}()

	logger.Debug("callback server listening on %s", s.redirectURI())
	return nil
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	s.once.Do(func() {
		// The browser may drop the connection while the code is confirmed.
		err := s.handler.Handle(context.WithoutCancel(r.Context()), r.URL.Query())
		s.result = Result{Snapshot: s.handler.Snapshot(), Err: err}
		close(s.done)
	})
	<-s.done

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if s.result.Snapshot.State == domain.CallbackError {
		w.WriteHeader(http.StatusBadRequest)
	}
	_, _ = fmt.Fprint(w, s.page(s.result.Snapshot))
}

// Wait blocks until the first redirect has been handled or ctx ends.
// A deadline on ctx is reported as ErrTimeout.
func (s *CallbackServer) Wait(ctx context.Context) (Result, error) {
	select {
	case <-s.done:
		return s.result, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{}, ErrTimeout
		}
		return Result{}, ctx.Err()
	}
}

// Stop shuts down the callback server.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Port returns the port the server is listening on.
func (s *CallbackServer) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Port
}

// RedirectURI returns the URL the provider should redirect to.
func (s *CallbackServer) RedirectURI() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redirectURI()
}

func (s *CallbackServer) redirectURI() string {
	return "http://" + net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port)) + s.cfg.Path
}

func (s *CallbackServer) text(key string, args ...any) string {
	if s.cfg.Text == nil {
		return key
	}
	return s.cfg.Text.Text(key, args...)
}

func (s *CallbackServer) page(snap domain.CallbackSnapshot) string {
	switch snap.State {
	case domain.CallbackSuccess:
		message := s.text(i18n.KeyCallbackCloseWindow)
		if snap.Status != nil && snap.Status.Email != "" {
			message = s.text(i18n.KeyCallbackSuccessAs, snap.Status.Email) + ". " + message
		}
		return resultHTML(s.text(i18n.KeyCallbackSuccess), message, "#1E8E3E")
	case domain.CallbackError:
		return resultHTML(s.text(i18n.KeyCallbackErrorTitle), snap.Error+" "+s.text(i18n.KeyCallbackCloseWindow), "#D93025")
	default:
		return resultHTML(s.text(i18n.KeyCallbackTitle), s.text(i18n.KeyCallbackWait), "#333F50")
	}
}

//nolint:misspell // CSS properties use American spelling
func resultHTML(title, message, accent string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>drivelink - %[1]s</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #FAFAFA;
        }
        .container {
            text-align: center;
            background: white;
            padding: 48px 64px;
            border-radius: 16px;
            border: 1px solid #C7C8CC;
            box-shadow: 0 4px 24px rgba(0,0,0,0.08);
        }
        h1 {
            color: %[3]s;
            margin: 0 0 8px 0;
            font-size: 24px;
            font-weight: 600;
        }
        p {
            color: #7B8088;
            margin: 0;
            font-size: 16px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>%[1]s</h1>
        <p>%[2]s</p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(message), accent)
}
