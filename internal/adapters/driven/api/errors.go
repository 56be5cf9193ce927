package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
)

// responseError maps a non-2xx response to an integration error.
// Any 404 is a missing route, whatever the body says.
func responseError(resp *http.Response, path string, defaultCode domain.Code) error {
	if resp.StatusCode == http.StatusNotFound {
		return &domain.RouteNotFoundError{Endpoint: path}
	}

	envelope := decodeEnvelope(resp)

	code := domain.Code(envelope.Error)
	if code == "" {
		code = defaultCode
	}
	message := envelope.Message
	if message == "" {
		message = envelope.Error
	}
	if message == "" {
		message = string(code)
	}
	return &domain.ServerError{
		Status:  resp.StatusCode,
		Code:    code,
		Message: message,
	}
}

// decodeEnvelope reads the error body, substituting a generic envelope when
// it is not a JSON object. String fields are kept even when a sibling field
// has an unexpected type.
func decodeEnvelope(resp *http.Response) domain.ErrorEnvelope {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return fallbackEnvelope(resp.StatusCode)
	}

	var fields struct {
		Error   json.RawMessage `json:"error"`
		Message json.RawMessage `json:"message"`
	}
	if json.Unmarshal(data, &fields) != nil {
		return fallbackEnvelope(resp.StatusCode)
	}
	return domain.ErrorEnvelope{
		Error:   stringField(fields.Error),
		Message: stringField(fields.Message),
	}
}

// stringField returns raw as a string, or "" when it is absent or not a
// JSON string.
func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func fallbackEnvelope(status int) domain.ErrorEnvelope {
	return domain.ErrorEnvelope{
		Error:   string(domain.CodeUnknown),
		Message: fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status)),
	}
}
