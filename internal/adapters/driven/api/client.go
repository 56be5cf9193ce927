// Package api provides the HTTP client for the application server's Google
// Drive integration endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.IntegrationAPI = (*Client)(nil)
	_ driven.FolderAPI      = (*Client)(nil)
)

// Endpoint paths relative to the base URL.
const (
	PathStatus          = "/api/google-drive-integration/status"
	PathAuthURL         = "/api/google-drive-integration/oauth/url"
	PathCallback        = "/api/google-drive-integration/oauth/callback"
	PathDisconnect      = "/api/google-drive-integration/disconnect"
	DefaultFoldersPath  = domain.DefaultFoldersEndpoint
	DefaultBaseURL      = domain.DefaultAPIURL
	DefaultRateLimit    = domain.DefaultRateLimit
	DefaultRateBurst    = 5
	headerRequestID     = "X-Request-ID"
	tracerName          = "github.com/custodia-labs/drivelink-cli/internal/adapters/driven/api"
	maxErrorBodyBytes   = 64 << 10
	maxSuccessBodyBytes = 1 << 20
)

// Config holds configuration for the integration client.
type Config struct {
	// BaseURL is the application server URL (default: http://localhost:8080).
	BaseURL string

	// FoldersPath is the folder-generation endpoint path.
	FoldersPath string

	// RateLimit is the maximum requests per second. Zero uses the default;
	// a negative value disables limiting.
	RateLimit float64

	// Burst is the limiter burst size (default: 5).
	Burst int

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client calls the integration endpoints with a bearer token.
type Client struct {
	http        *http.Client
	base        *url.URL
	foldersPath string
	tokens      driven.TokenProvider
	limiter     *rate.Limiter
	tracer      trace.Tracer
}

// NewClient creates a new integration client.
func NewClient(cfg Config, tokens driven.TokenProvider) (*Client, error) {
	if tokens == nil {
		return nil, fmt.Errorf("api: token provider is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api: base url %q must be http or https", cfg.BaseURL)
	}
	if cfg.FoldersPath == "" {
		cfg.FoldersPath = DefaultFoldersPath
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}

	var limiter *rate.Limiter
	switch {
	case cfg.RateLimit < 0:
		limiter = rate.NewLimiter(rate.Inf, 0)
	default:
		if cfg.RateLimit == 0 {
			cfg.RateLimit = DefaultRateLimit
		}
		if cfg.Burst <= 0 {
			cfg.Burst = DefaultRateBurst
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}

	return &Client{
		http:        cfg.HTTPClient,
		base:        base,
		foldersPath: "/" + strings.TrimLeft(cfg.FoldersPath, "/"),
		tokens:      tokens,
		limiter:     limiter,
		tracer:      otel.Tracer(tracerName),
	}, nil
}

// BaseURL returns the server URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Status fetches the current connection state.
func (c *Client) Status(ctx context.Context) (*domain.IntegrationStatus, error) {
	var status domain.IntegrationStatus
	err := c.do(ctx, call{
		name:        "status",
		method:      http.MethodGet,
		path:        PathStatus,
		defaultCode: domain.CodeFailedToGetStatus,
		out:         &status,
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// AuthURL fetches the provider authorization URL.
func (c *Client) AuthURL(ctx context.Context) (string, error) {
	var body domain.AuthURL
	err := c.do(ctx, call{
		name:        "auth_url",
		method:      http.MethodGet,
		path:        PathAuthURL,
		defaultCode: domain.CodeFailedToGenerateAuthURL,
		out:         &body,
	})
	if err != nil {
		return "", err
	}
	if body.AuthURL == "" {
		return "", &domain.ServerError{
			Status:  http.StatusOK,
			Code:    domain.CodeFailedToGenerateAuthURL,
			Message: "response has no authUrl",
		}
	}
	return body.AuthURL, nil
}

// ConfirmCode exchanges the authorization code server-side.
func (c *Client) ConfirmCode(ctx context.Context, code string) (*domain.IntegrationStatus, error) {
	var status domain.IntegrationStatus
	err := c.do(ctx, call{
		name:        "confirm_code",
		method:      http.MethodPost,
		path:        PathCallback,
		defaultCode: domain.CodeFailedToConnect,
		in:          domain.ConfirmRequest{Code: code},
		out:         &status,
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Disconnect revokes the server-side connection. The response body is ignored.
func (c *Client) Disconnect(ctx context.Context) error {
	return c.do(ctx, call{
		name:        "disconnect",
		method:      http.MethodPost,
		path:        PathDisconnect,
		defaultCode: domain.CodeFailedToDisconnect,
	})
}

// GenerateFolders asks the server to create the channel folders.
func (c *Client) GenerateFolders(
	ctx context.Context,
	req domain.FolderRequest,
) (*domain.FolderGenerationResult, error) {
	var result domain.FolderGenerationResult
	err := c.do(ctx, call{
		name:        "generate_folders",
		method:      http.MethodPost,
		path:        c.foldersPath,
		defaultCode: domain.CodeFailedToGenerateFolders,
		in:          req,
		out:         &result,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// call describes one request.
type call struct {
	name        string
	method      string
	path        string
	defaultCode domain.Code
	in          any
	out         any
}

// do sends exactly one request. Non-2xx responses become integration errors.
func (c *Client) do(ctx context.Context, cl call) (err error) {
	ctx, span := c.tracer.Start(ctx, "drivelink.api."+cl.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", cl.method),
			attribute.String("url.path", cl.path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", cl.name, err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: rate limit: %w", cl.name, err)
	}

	var body io.Reader
	if cl.in != nil {
		payload, err := json.Marshal(cl.in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", cl.name, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.base.String()+cl.path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", cl.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)
	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	logger.Debug("api: %s %s (request %s)", cl.method, cl.path, requestID)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", cl.name, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	logger.Debug("api: %s %s -> %d", cl.method, cl.path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp, cl.path, cl.defaultCode)
	}

	if cl.out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxSuccessBodyBytes))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxSuccessBodyBytes)).Decode(cl.out); err != nil {
		return &domain.ServerError{
			Status:  resp.StatusCode,
			Code:    domain.CodeUnknown,
			Message: fmt.Sprintf("decode %s response: %v", cl.name, err),
		}
	}
	return nil
}
