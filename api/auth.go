package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// Login authenticates with email and password. The response is either a
// direct-login outcome or a two-factor descriptor; the caller decides which.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/Auth/login", req, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.Login]")
	}
	return &resp, nil
}

// Me fetches the profile of the credential's owner.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/User/me", nil, &profile); err != nil {
		return nil, errors.Wrap(err, "[Client.Me]")
	}
	return &profile, nil
}

// TwoFactorStatus fetches the approval state of a pending login request.
func (c *Client) TwoFactorStatus(ctx context.Context, id string) (*TwoFactorStatusResponse, error) {
	var resp TwoFactorStatusResponse
	if err := c.do(ctx, http.MethodGet, "/TwoFactorRequest/Status/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.TwoFactorStatus]")
	}
	return &resp, nil
}
