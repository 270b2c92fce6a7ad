package authsdk

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a session token.
func (c *SDKClient) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth", LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Register creates an account and returns its first session token.
func (c *SDKClient) Register(ctx context.Context, name, email, password string) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/users", RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return "", err
	}

	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.Token, nil
}

// CurrentAccount resolves the attached token to its account.
func (c *SDKClient) CurrentAccount(ctx context.Context) (*Account, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/auth", nil)
	if err != nil {
		return nil, err
	}

	var acct Account
	if err := decodeJSON(resp, &acct, http.StatusOK); err != nil {
		return nil, err
	}
	return &acct, nil
}
