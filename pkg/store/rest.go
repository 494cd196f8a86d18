package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultHTTPClient is the client the constructors fall back to when
// none is supplied. Matches the console's outbound timeout.
var DefaultHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}

// restClient is the shared JSON-over-HTTP plumbing of the store
// clients. One instance per backend base URL.
type restClient struct {
	baseURL string
	http    *http.Client
}

func newRESTClient(baseURL string, client *http.Client) *restClient {
	if client == nil {
		client = DefaultHTTPClient
	}
	return &restClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
}

// errorBody is the error envelope the backends respond with. Both
// field spellings occur across the services.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do issues one JSON request and decodes a 2xx body into out (out may
// be nil for empty responses). Non-2xx responses and transport
// failures come back as *Error tagged with op.
func (c *restClient) do(ctx context.Context, method, path string, body, out interface{}, op string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(raw, &eb) == nil {
			if eb.Message != "" {
				msg = eb.Message
			} else if eb.Error != "" {
				msg = eb.Error
			}
		}
		return &Error{Op: op, Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}
