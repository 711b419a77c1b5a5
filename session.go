package twocaptcha

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
)

// session is the shared HTTP gateway to the API host. It injects the
// clientKey field into every request body and classifies transport-level
// failures. It lives for the Client's lifetime.
type session struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

func newSession(cfg ClientConfig) *session {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.HTTPTimeout}
		if cfg.ForceHTTP1 {
			hc.Transport = &http.Transport{
				ForceAttemptHTTP2: false,
				TLSNextProto:      map[string]func(string, *tls.Conn) http.RoundTripper{},
			}
		}
	}
	return &session{baseURL: cfg.BaseURL, apiKey: cfg.APIKey, hc: hc}
}

// post sends a JSON POST to the given API path and decodes the response
// into result. Connectivity failures and non-200 statuses come back as
// *TransportError; in-body error codes are left for the caller to inspect.
func (s *session) post(ctx context.Context, path string, payload map[string]any, result any) error {
	body := map[string]any{"clientKey": s.apiKey}
	for k, v := range payload {
		body[k] = v
	}

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.hc.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}
	if resp.StatusCode != 200 {
		return &TransportError{StatusCode: resp.StatusCode, Body: string(raw[:min(200, len(raw))])}
	}

	if err := sonic.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("twocaptcha: decode %s response: %w", path, err)
	}
	return nil
}

// close releases idle connections held by the shared transport.
func (s *session) close() {
	s.hc.CloseIdleConnections()
}
