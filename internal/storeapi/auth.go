package storeapi

import (
	"context"
	"net/http"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type Me struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Login exchanges credentials for a bearer token. It does not store the token.
func (c *Client) Login(ctx context.Context, cred Credentials) (string, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", cred, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Me(ctx context.Context) (*Me, error) {
	var me Me
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}
