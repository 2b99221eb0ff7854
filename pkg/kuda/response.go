package kuda

import (
	"context"
	"encoding/json"
)

// Response is the normalized outcome of one Kuda API call. Exactly one of
// Payload (success) or Raw (error passthrough) is populated, never both.
type Response struct {
	StatusCode int             `json:"status_code"`
	Payload    map[string]any  `json:"payload,omitempty"`
	Raw        json.RawMessage `json:"raw,omitempty"`
	Error      bool            `json:"error"`
}

// errorResponse builds an error result carrying the upstream status and raw
// body. Non-JSON bodies are stored as a JSON string so the result always
// marshals cleanly.
func errorResponse(status int, body []byte) Response {
	raw := json.RawMessage(body)
	if len(body) > 0 && !json.Valid(body) {
		quoted, _ := json.Marshal(string(body))
		raw = quoted
	}
	return Response{StatusCode: status, Raw: raw, Error: true}
}

// HeaderResult is the outcome of the header acquisition step. Exactly one
// state holds: Headers was built, the upstream rejected the credential
// exchange (StatusCode and Body carry its reply), or the transport itself
// failed (Err). Use the constructors below rather than literal values.
type HeaderResult struct {
	Headers    map[string]string
	StatusCode int
	Body       []byte
	Err        error
}

// HeadersOK wraps a usable header mapping.
func HeadersOK(headers map[string]string) HeaderResult {
	return HeaderResult{Headers: headers}
}

// HeadersFailed records an upstream rejection of the credential exchange.
func HeadersFailed(status int, body []byte) HeaderResult {
	return HeaderResult{StatusCode: status, Body: body}
}

// HeadersError records a transport-level failure.
func HeadersError(err error) HeaderResult {
	return HeaderResult{Err: err}
}

// OK reports whether the result carries usable headers.
func (hr HeaderResult) OK() bool {
	return hr.Err == nil && hr.Headers != nil
}

// HeaderSource produces the authenticated headers for one request. It
// reports failures in-band through HeaderResult instead of panicking or
// returning partial maps.
type HeaderSource interface {
	Headers(ctx context.Context) HeaderResult
}
