package http

import (
	"net/http"
	"time"
)

// NewClient builds the shared outbound HTTP client. One client is reused
// across adapters so connections are pooled.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
