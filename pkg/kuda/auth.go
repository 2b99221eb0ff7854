package kuda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/finverge-hq/gokuda/pkg/httpclient"
)

// tokenSource exchanges the account credentials for a bearer token on every
// call. Tokens are never cached.
type tokenSource struct {
	email    string
	apiKey   string
	tokenURL string
	client   httpclient.Client
	log      Logger
}

func newTokenSource(creds Credentials, client httpclient.Client, log Logger) *tokenSource {
	return &tokenSource{
		email:    creds.Email,
		apiKey:   creds.KudaKey,
		tokenURL: creds.TokenURL,
		client:   client,
		log:      ensureLogger(log),
	}
}

// Headers performs the credential exchange. The token endpoint answers a
// successful exchange with the raw token as its body.
func (t *tokenSource) Headers(ctx context.Context) HeaderResult {
	body, err := json.Marshal(map[string]string{
		"email":  t.email,
		"apiKey": t.apiKey,
	})
	if err != nil {
		return HeadersError(fmt.Errorf("encode token request: %w", err))
	}

	resp, err := t.client.Post(ctx, t.tokenURL, body, map[string]string{
		"content-type": "application/json",
	})
	if err != nil {
		return HeadersError(fmt.Errorf("token request: %w", err))
	}

	if resp.StatusCode() != http.StatusOK {
		t.log.WarnObj("token exchange rejected", "token_failure", map[string]any{
			"status": resp.StatusCode(),
		})
		return HeadersFailed(resp.StatusCode(), resp.Body())
	}

	return HeadersOK(map[string]string{
		"content-type":  "application/json",
		"Authorization": "Bearer " + string(resp.Body()),
	})
}
