package kuda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/finverge-hq/gokuda/pkg/endpoints"
)

// Do executes the endpoint registered under the given service type with the
// caller's payload and normalizes the reply. Operations added to the
// registry at runtime are reachable through it without a dedicated method.
func (c *Client) Do(ctx context.Context, serviceType string, payload map[string]any) (Response, error) {
	spec, ok := c.registry.ByServiceType(serviceType)
	if !ok {
		return Response{}, fmt.Errorf("unknown service type %q", serviceType)
	}
	return c.call(ctx, spec, payload)
}

// call is the normalization routine every operation funnels through: build
// headers, POST once, apply the endpoint's success predicate, and either
// extract the documented fields or pass the raw reply through as an error
// result. Transport failures and unparseable bodies are returned as errors,
// never folded into a result.
func (c *Client) call(ctx context.Context, spec endpoints.Spec, payload map[string]any) (Response, error) {
	hr := c.auth.Headers(ctx)
	if hr.Err != nil {
		return Response{}, fmt.Errorf("generate headers: %w", hr.Err)
	}
	if !hr.OK() {
		c.log.WarnObj("header step failed, request not sent", "auth_failure", map[string]any{
			"service_type": spec.ServiceType,
			"status":       hr.StatusCode,
		})
		return errorResponse(hr.StatusCode, hr.Body), nil
	}

	if payload == nil {
		payload = map[string]any{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("encode %s payload: %w", spec.ServiceType, err)
	}

	resp, err := c.http.Post(ctx, c.creds.RequestURL, body, hr.Headers)
	if err != nil {
		return Response{}, fmt.Errorf("request %s: %w", spec.ServiceType, err)
	}

	raw := resp.Body()
	if !gjson.ValidBytes(raw) {
		return Response{}, fmt.Errorf("decode %s response: invalid JSON body", spec.ServiceType)
	}

	if !succeeded(spec, resp.StatusCode(), raw) {
		c.log.DebugObj("endpoint reported failure", "endpoint_failure", map[string]any{
			"service_type": spec.ServiceType,
			"status":       resp.StatusCode(),
		})
		return errorResponse(resp.StatusCode(), raw), nil
	}

	out := make(map[string]any, len(spec.Fields)+len(spec.Echo))
	for _, f := range spec.Fields {
		v := gjson.GetBytes(raw, f.Path)
		if !v.Exists() && !f.Optional {
			c.log.DebugObj("response missing extraction field", "endpoint_failure", map[string]any{
				"service_type": spec.ServiceType,
				"path":         f.Path,
			})
			return errorResponse(resp.StatusCode(), raw), nil
		}
		out[f.Key] = v.Value()
	}
	for _, f := range spec.Echo {
		v := gjson.GetBytes(body, f.Path)
		if !v.Exists() {
			return Response{}, fmt.Errorf("request payload missing %s", f.Path)
		}
		out[f.Key] = v.Value()
	}

	c.log.DebugObj("request normalized", "request_result", map[string]any{
		"service_type": spec.ServiceType,
		"status":       spec.SuccessStatus,
	})

	return Response{StatusCode: spec.SuccessStatus, Payload: out}, nil
}

// succeeded applies the endpoint's success predicate to the parsed body.
// Predicates intentionally differ between endpoints; each spec mirrors what
// its endpoint actually guarantees, so no checks are added or unified here.
func succeeded(spec endpoints.Spec, status int, body []byte) bool {
	if status != http.StatusOK {
		return false
	}
	if spec.CheckStatusFlag && !truthy(gjson.GetBytes(body, "status")) {
		return false
	}
	for _, path := range spec.Require {
		if !truthy(gjson.GetBytes(body, path)) {
			return false
		}
	}
	return true
}

// truthy mirrors the loose presence rule the remote API's consumers rely
// on: absent, null, false, zero, empty strings and empty containers all
// fail the check.
func truthy(v gjson.Result) bool {
	if !v.Exists() {
		return false
	}
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	case gjson.JSON:
		if v.IsArray() {
			return len(v.Array()) > 0
		}
		if v.IsObject() {
			return len(v.Map()) > 0
		}
		return true
	default:
		return false
	}
}
