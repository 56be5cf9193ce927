package oauth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrEmptyRedirect is returned when no redirect URL was given.
var ErrEmptyRedirect = errors.New("redirect url is empty")

// ParseRedirect extracts the query parameters from a pasted redirect.
// It accepts a full URL, a "?query" suffix or a bare query string.
func ParseRedirect(raw string) (url.Values, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyRedirect
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	params, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("parse redirect url: %w", err)
	}
	return params, nil
}
