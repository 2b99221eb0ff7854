package kuda

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/finverge-hq/gokuda/pkg/httpclient"
)

type stubResponse struct {
	status int
	body   []byte
}

func (r stubResponse) Body() []byte    { return r.body }
func (r stubResponse) StatusCode() int { return r.status }

type capturedCall struct {
	url     string
	body    []byte
	headers map[string]string
}

type stubTransport struct {
	responses []stubResponse
	err       error
	calls     []capturedCall
}

func (s *stubTransport) Post(_ context.Context, url string, body []byte, headers map[string]string) (httpclient.Response, error) {
	s.calls = append(s.calls, capturedCall{
		url:     url,
		body:    append([]byte(nil), body...),
		headers: headers,
	})
	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return stubResponse{status: http.StatusOK, body: []byte(`{}`)}, nil
	}
	i := len(s.calls) - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

type stubHeaders struct {
	result HeaderResult
}

func (s stubHeaders) Headers(context.Context) HeaderResult { return s.result }

func okHeaders() HeaderSource {
	return stubHeaders{result: HeadersOK(map[string]string{
		"content-type":  "application/json",
		"Authorization": "Bearer tok",
	})}
}

func testCreds() Credentials {
	return Credentials{
		KudaKey:           "k-live-123",
		TokenURL:          "https://kuda-openapi.kuda.com/v2.1/Account/GetToken",
		RequestURL:        "https://kuda-openapi.kuda.com/v2.1",
		Email:             "dev@finverge.example",
		MainAccountNumber: "3000012345",
	}
}

func newTestClient(t *testing.T, transport *stubTransport, hs HeaderSource) *Client {
	t.Helper()

	client, err := New(testCreds(), Options{
		HTTPClient:   transport,
		HeaderSource: hs,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestCreateVirtualAccountNormalizesCreation(t *testing.T) {
	transport := &stubTransport{responses: []stubResponse{
		{status: http.StatusOK, body: []byte(`{"status": true, "data": {"accountNumber": "1234567890"}}`)},
	}}
	client := newTestClient(t, transport, okHeaders())

	res, err := client.CreateVirtualAccountRequest(context.Background(), map[string]any{
		"serviceType": "ADMIN_CREATE_VIRTUAL_ACCOUNT",
		"requestRef":  "ref-1",
		"Data":        map[string]any{"trackingReference": "TRK1"},
	})
	if err != nil {
		t.Fatalf("CreateVirtualAccountRequest: %v", err)
	}

	if res.Error {
		t.Fatalf("expected success, got error result: %s", res.Raw)
	}
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", res.StatusCode)
	}
	want := map[string]any{
		"account_number":     "1234567890",
		"tracking_reference": "TRK1",
	}
	if !reflect.DeepEqual(res.Payload, want) {
		t.Fatalf("payload = %#v, want %#v", res.Payload, want)
	}
	if len(res.Raw) != 0 {
		t.Fatalf("success result should not carry a raw body, got %s", res.Raw)
	}

	if len(transport.calls) != 1 {
		t.Fatalf("expected one HTTP call, got %d", len(transport.calls))
	}
	call := transport.calls[0]
	if call.url != testCreds().RequestURL {
		t.Fatalf("posted to %s, want %s", call.url, testCreds().RequestURL)
	}
	if call.headers["Authorization"] != "Bearer tok" {
		t.Fatalf("auth header not forwarded: %v", call.headers)
	}
}

func TestBalanceQueryMapsBalanceFields(t *testing.T) {
	transport := &stubTransport{responses: []stubResponse{
		{status: http.StatusOK, body: []byte(`{"status": true, "data": {"ledgerBalance": 100, "availableBalance": 90, "withdrawableBalance": 80}}`)},
	}}
	client := newTestClient(t, transport, okHeaders())

	res, err := client.VirtualAccountBalance(context.Background(), "TRK1")
	if err != nil {
		t.Fatalf("VirtualAccountBalance: %v", err)
	}

	if res.Error || res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected result: %+v", res)
	}
	want := map[string]any{
		"ledger":       float64(100),
		"available":    float64(90),
		"withdrawable": float64(80),
	}
	if !reflect.DeepEqual(res.Payload, want) {
		t.Fatalf("payload = %#v, want %#v", res.Payload, want)
	}
}

func TestCallShortCircuitsWhenHeaderStepFails(t *testing.T) {
	transport := &stubTransport{}
	failure := []byte(`{"message": "Invalid Credentials"}`)
	client := newTestClient(t, transport, stubHeaders{result: HeadersFailed(http.StatusUnauthorized, failure)})

	res, err := client.BankList(context.Background())
	if err != nil {
		t.Fatalf("BankList: %v", err)
	}

	if !res.Error {
		t.Fatalf("expected error result")
	}
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want the header step status 401", res.StatusCode)
	}
	if string(res.Raw) != string(failure) {
		t.Fatalf("raw = %s, want the header step body", res.Raw)
	}
	if res.Payload != nil {
		t.Fatalf("error result must not carry a payload, got %#v", res.Payload)
	}
	if len(transport.calls) != 0 {
		t.Fatalf("no HTTP request may be issued after a header failure, saw %d", len(transport.calls))
	}
}

func TestCallReturnsHeaderTransportError(t *testing.T) {
	client := newTestClient(t, &stubTransport{}, stubHeaders{
		result: HeadersError(errors.New("dial tcp: i/o timeout")),
	})

	_, err := client.BankList(context.Background())
	if err == nil {
		t.Fatalf("expected transport error from the header step")
	}
	if !strings.Contains(err.Error(), "generate headers") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCallErrorOnNon200Status(t *testing.T) {
	body := []byte(`{"message": "bad gateway"}`)
	transport := &stubTransport{responses: []stubResponse{{status: http.StatusBadGateway, body: body}}}
	client := newTestClient(t, transport, okHeaders())

	res, err := client.BankList(context.Background())
	if err != nil {
		t.Fatalf("BankList: %v", err)
	}

	if !res.Error || res.StatusCode != http.StatusBadGateway {
		t.Fatalf("unexpected result: %+v", res)
	}
	if string(res.Raw) != string(body) {
		t.Fatalf("raw body not passed through: %s", res.Raw)
	}
}

func TestCallErrorWhenStatusFlagFalse(t *testing.T) {
	body := []byte(`{"status": false, "message": "Invalid parameters"}`)
	transport := &stubTransport{responses: []stubResponse{{status: http.StatusOK, body: body}}}
	client := newTestClient(t, transport, okHeaders())

	res, err := client.BankList(context.Background())
	if err != nil {
		t.Fatalf("BankList: %v", err)
	}

	if !res.Error {
		t.Fatalf("expected error result when the status flag is false")
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want the transport status 200", res.StatusCode)
	}
}

func TestCallErrorWhenRequiredFieldMissing(t *testing.T) {
	transport := &stubTransport{responses: []stubResponse{
		{status: http.StatusOK, body: []byte(`{"status": true, "data": {}}`)},
	}}
	client := newTestClient(t, transport, okHeaders())

	res, err := client.CreateVirtualAccountRequest(context.Background(), map[string]any{
		"Data": map[string]any{"trackingReference": "TRK1"},
	})
	if err != nil {
		t.Fatalf("CreateVirtualAccountRequest: %v", err)
	}
	if !res.Error {
		t.Fatalf("expected error result when data.accountNumber is absent")
	}
}

func TestCallErrorWhenExtractionFieldMissing(t *testing.T) {
	// Balance endpoints gate only on the status flag; an incomplete body
	// must still come back as an error result.
	transport := &stubTransport{responses: []stubResponse{
		{status: http.StatusOK, body: []byte(`{"status": true, "data": {"ledgerBalance": 100}}`)},
	}}
	client := newTestClient(t, transport, okHeaders())

	res, err := client.MainAccountBalance(context.Background())
	if err != nil {
		t.Fatalf("MainAccountBalance: %v", err)
	}
	if !res.Error || res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestCallFatalOnInvalidJSONBody(t *testing.T) {
	transport := &stubTransport{responses: []stubResponse{
		{status: http.StatusOK, body: []byte(`<!doctype html>`)},
	}}
	client := newTestClient(t, transport, okHeaders())

	_, err := client.BankList(context.Background())
	if err == nil {
		t.Fatalf("expected error for unparseable body")
	}
	if !strings.Contains(err.Error(), "invalid JSON") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCallFatalOnTransportError(t *testing.T) {
	transport := &stubTransport{err: errors.New("connection refused")}
	client := newTestClient(t, transport, okHeaders())

	_, err := client.BankList(context.Background())
	if err == nil {
		t.Fatalf("expected transport error to propagate")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCallErrorsWhenEchoFieldMissing(t *testing.T) {
	transport := &stubTransport{responses: []stubResponse{
		{status: http.StatusOK, body: []byte(`{"status": true, "data": {"accountNumber": "111"}}`)},
	}}
	client := newTestClient(t, transport, okHeaders())

	_, err := client.CreateVirtualAccountRequest(context.Background(), map[string]any{
		"Data": map[string]any{},
	})
	if err == nil {
		t.Fatalf("expected error for missing echo field")
	}
	if !strings.Contains(err.Error(), "Data.trackingReference") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCallOptionalFieldsDefaultToNil(t *testing.T) {
	transport := &stubTransport{responses: []stubResponse{
		{status: http.StatusOK, body: []byte(`{"status": true, "data": {"beneficiaryAccountNumber": "0123456789", "beneficiaryName": "JOHN DOE"}}`)},
	}}
	client := newTestClient(t, transport, okHeaders())

	res, err := client.ConfirmTransferRecipientRequest(context.Background(), map[string]any{
		"Data": map[string]any{"SenderTrackingReference": ""},
	})
	if err != nil {
		t.Fatalf("ConfirmTransferRecipientRequest: %v", err)
	}
	if res.Error {
		t.Fatalf("expected success, got error result: %s", res.Raw)
	}

	for _, key := range []string{"beneficiary_code", "session_id", "sender_account", "transfer_charge", "name_enquiry_id"} {
		v, present := res.Payload[key]
		if !present {
			t.Fatalf("optional key %q missing from payload", key)
		}
		if v != nil {
			t.Fatalf("optional key %q = %#v, want nil", key, v)
		}
	}
	if res.Payload["tracking_reference"] != "" {
		t.Fatalf("tracking_reference = %#v, want empty echo", res.Payload["tracking_reference"])
	}
}

func TestCallNilPayloadPostsEmptyObject(t *testing.T) {
	transport := &stubTransport{responses: []stubResponse{
		{status: http.StatusOK, body: []byte(`{"status": true, "data": {"banks": [{"bankCode": "044"}]}}`)},
	}}
	client := newTestClient(t, transport, okHeaders())

	res, err := client.BankListRequest(context.Background(), nil)
	if err != nil {
		t.Fatalf("BankListRequest: %v", err)
	}
	if res.Error {
		t.Fatalf("unexpected error result: %s", res.Raw)
	}
	if string(transport.calls[0].body) != "{}" {
		t.Fatalf("nil payload should post an empty object, sent %s", transport.calls[0].body)
	}
}

func TestDoRejectsUnknownServiceType(t *testing.T) {
	client := newTestClient(t, &stubTransport{}, okHeaders())

	_, err := client.Do(context.Background(), "NO_SUCH_SERVICE", nil)
	if err == nil {
		t.Fatalf("expected unknown service type error")
	}
	if !strings.Contains(err.Error(), `"NO_SUCH_SERVICE"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}
