package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// BackendClient is the HTTP client for the upstream El Buen Sabor API. All
// catalog, cart, promotion, branch, profile and order data lives behind it;
// this service never persists those entities itself.
type BackendClient struct {
	baseURL string
	client  *http.Client
}

func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (b *BackendClient) Do(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Response, error) {
	u := b.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return b.client.Do(req)
}

// getJSON issues a GET and decodes the response into out.
func (b *BackendClient) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	resp, err := b.Do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return DecodeJSON(resp, out)
}

// sendJSON issues a request with a JSON body and decodes the response into
// out (out may be nil when the caller discards the body).
func (b *BackendClient) sendJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	resp, err := b.Do(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	if out == nil {
		return drain(resp)
	}
	return DecodeJSON(resp, out)
}

// upstreamError is the error payload shape the backend emits.
type upstreamError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DecodeJSON decodes a successful response into out. Error responses are
// turned into an error carrying the backend's human-readable message when one
// is present, else a generic fallback.
func DecodeJSON(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		var ue upstreamError
		if err := json.Unmarshal(body, &ue); err == nil {
			if ue.Message != "" {
				return &UpstreamError{Status: resp.StatusCode, Message: ue.Message}
			}
			if ue.Error != "" {
				return &UpstreamError{Status: resp.StatusCode, Message: ue.Error}
			}
		}
		return &UpstreamError{Status: resp.StatusCode, Message: fmt.Sprintf("el servidor respondió %d", resp.StatusCode)}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// UpstreamError is a non-2xx response from the backend.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status=%d message=%s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	ue, ok := err.(*UpstreamError)
	return ok && ue.Status == http.StatusNotFound
}

func drain(resp *http.Response) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		var ue upstreamError
		if err := json.Unmarshal(body, &ue); err == nil && (ue.Message != "" || ue.Error != "") {
			msg := ue.Message
			if msg == "" {
				msg = ue.Error
			}
			return &UpstreamError{Status: resp.StatusCode, Message: msg}
		}
		return &UpstreamError{Status: resp.StatusCode, Message: fmt.Sprintf("el servidor respondió %d", resp.StatusCode)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// CopyResponse streams an upstream response through to the caller, headers
// and status included.
func CopyResponse(w http.ResponseWriter, resp *http.Response) error {
	defer resp.Body.Close()

	for k, v := range resp.Header {
		for _, vv := range v {
			w.Header().Add(k, vv)
		}
	}
	w.WriteHeader(resp.StatusCode)

	_, err := io.Copy(w, resp.Body)
	return err
}

// ReadJSONBody consumes and returns the request body.
func ReadJSONBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

// BodyFromBytes wraps b in a reader, or nil when b is empty.
func BodyFromBytes(b []byte) io.Reader {
	if len(b) == 0 {
		return nil
	}
	return bytes.NewReader(b)
}
