package foliosdk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// RequestDownloadLink asks the service for a signed download link to the
// resource with the given id. A missing resource is reported as a 404
// *APIError.
func (c *Client) RequestDownloadLink(ctx context.Context, id string) (*DownloadTicket, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/download-links", DownloadLinkRequest{ID: id})
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var ticket DownloadTicket
	if err := decodeJSON(resp, &ticket, http.StatusOK); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListResources returns the public catalog.
func (c *Client) ListResources(ctx context.Context) ([]ResourceSummary, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/resources", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var list ResourceListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list.Resources, nil
}

// ResolveDownload redeems a token without following the redirect and returns
// the real location the service points at. tokenOrURL may be a bare token or
// a full link as returned in DownloadTicket.URL.
func (c *Client) ResolveDownload(ctx context.Context, tokenOrURL string) (string, error) {
	token, err := extractToken(tokenOrURL)
	if err != nil {
		return "", err
	}

	path := "/api/download"
	if token != "" {
		path += "?token=" + url.QueryEscape(token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.noRedirect().Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusTemporaryRedirect, http.StatusFound, http.StatusSeeOther:
		loc := resp.Header.Get("Location")
		if loc == "" {
			return "", errors.New("foliosdk: redirect without location")
		}
		return loc, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err := parseErrorResponse(resp, body); err != nil {
			return "", err
		}
		return "", &APIError{StatusCode: resp.StatusCode, Code: ErrorCodeServerError, Description: "expected a redirect"}
	}
}

// extractToken pulls the token query parameter out of a link, or returns the
// input unchanged when it is not a URL.
func extractToken(tokenOrURL string) (string, error) {
	if !strings.Contains(tokenOrURL, "?") {
		return tokenOrURL, nil
	}

	u, err := url.Parse(tokenOrURL)
	if err != nil {
		return "", fmt.Errorf("foliosdk: parse link: %w", err)
	}
	return u.Query().Get("token"), nil
}
