package deploy

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// maxErrorBody bounds how much of a failed response is kept for the log.
const maxErrorBody = 2048

// NewHTTPClient returns the client shared by the deployers. timeout covers
// the whole request, upload included.
func NewHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			ForceAttemptHTTP2:     true,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: timeout,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// is2xx is the default success test.
func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// send executes req once. A status rejected by accept becomes an *APIError;
// otherwise a non-empty body is decoded into out (when out is non-nil).
func send(client *http.Client, req *http.Request, op string, out any, accept func(int) bool) (int, error) {
	if accept == nil {
		accept = is2xx
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, &APIError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &APIError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if !accept(resp.StatusCode) {
		return resp.StatusCode, &APIError{Op: op, Status: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}
	if out != nil && len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, &APIError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return resp.StatusCode, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
