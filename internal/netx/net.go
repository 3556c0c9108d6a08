// Package netx wraps the HTTP round trips made to the pinning service and
// the retrieval gateway.
package netx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// MaxResponseSize caps how much of a response body is read.
const MaxResponseSize = 10 << 20

// StatusError is returned for non-2xx responses. Body holds the (truncated)
// error payload.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}

// Do sends req and returns the response body for 2xx statuses.
func Do(ctx context.Context, c *http.Client, req *http.Request) ([]byte, error) {
	if c == nil {
		c = http.DefaultClient
	}

	resp, err := c.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(body)
		if len(msg) > 512 {
			msg = msg[:512]
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: msg}
	}

	return body, nil
}

// DoJSON is Do followed by decoding the body into out.
func DoJSON(ctx context.Context, c *http.Client, req *http.Request, out any) error {
	body, err := Do(ctx, c, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
