package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// The Kuda open API is POST-only: one base URL, JSON bodies in both directions.
type Client interface {
	Post(ctx context.Context, url string, body []byte, headers map[string]string) (Response, error)
}
