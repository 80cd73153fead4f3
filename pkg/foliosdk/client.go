package foliosdk

import (
	"net/http"
	"strings"
	"time"
)

// Client talks to a folio download service. It covers the public endpoints;
// admin operations go through an AdminSession.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// noRedirect returns a copy of the HTTP client that hands redirects back to
// the caller instead of following them.
func (c *Client) noRedirect() *http.Client {
	hc := *c.HTTPClient
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &hc
}
