package foliosdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pquerna/otp/totp"
)

// AdminSession performs catalog maintenance and link revocation with the
// operator's admin token.
type AdminSession struct {
	client     *Client
	token      string
	totpSecret string
	now        func() time.Time
}

// AdminOption configures an AdminSession.
type AdminOption func(*AdminSession)

// WithTOTPSecret makes the session send a fresh one-time code with every
// request. Required when the service runs with ADMIN_TOTP_SECRET.
func WithTOTPSecret(secret string) AdminOption {
	return func(s *AdminSession) { s.totpSecret = secret }
}

// NewAdminSession returns a session that authenticates with token.
func (c *Client) NewAdminSession(token string, opts ...AdminOption) *AdminSession {
	s := &AdminSession{client: c, token: token, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// doAdminRequest builds and sends an authenticated admin request.
func (s *AdminSession) doAdminRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	req, err := s.client.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.token)
	if s.totpSecret != "" {
		code, err := totp.GenerateCode(s.totpSecret, s.now())
		if err != nil {
			return nil, fmt.Errorf("failed to generate one-time code: %w", err)
		}
		req.Header.Set("X-OTP", code)
	}

	return s.client.do(req)
}

// ListResources returns every catalog entry including download locations.
func (s *AdminSession) ListResources(ctx context.Context) ([]AdminResource, error) {
	resp, err := s.doAdminRequest(ctx, http.MethodGet, "/v1/admin/resources", nil)
	if err != nil {
		return nil, err
	}

	var list AdminResourceListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list.Resources, nil
}

// PutResource creates or replaces the resource with the given id.
func (s *AdminSession) PutResource(ctx context.Context, id string, req PutResourceRequest) (*AdminResource, error) {
	resp, err := s.doAdminRequest(ctx, http.MethodPut, "/v1/admin/resources/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var res AdminResource
	if err := decodeJSON(resp, &res, http.StatusOK); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteResource removes a resource. Links already issued for it start
// answering 404.
func (s *AdminSession) DeleteResource(ctx context.Context, id string) error {
	resp, err := s.doAdminRequest(ctx, http.MethodDelete, "/v1/admin/resources/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// RevokeLink revokes an issued link. tokenOrURL may be the bare token or the
// full link.
func (s *AdminSession) RevokeLink(ctx context.Context, tokenOrURL, reason string) (*RevokeLinkResponse, error) {
	token, err := extractToken(tokenOrURL)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAdminRequest(ctx, http.MethodPost, "/v1/admin/links/revoke", RevokeLinkRequest{
		Token:  token,
		Reason: reason,
	})
	if err != nil {
		return nil, err
	}

	var out RevokeLinkResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
