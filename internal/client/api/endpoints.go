package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/fintrack/internal/client/models"
)

// LoginAccessToken exchanges credentials for an access token using the
// OAuth2 password form.
func (c *Client) LoginAccessToken(ctx context.Context, username, password string) (*models.Token, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)

	var tok models.Token
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/login/access-token",
		body:        []byte(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &tok)
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

// TestToken asks the backend to validate the current token.
func (c *Client) TestToken(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, request{method: http.MethodPost, path: "/login/test-token"}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ReadUserMe(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/users/me"}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUserMe(ctx context.Context, in models.UserUpdateMe) (*models.User, error) {
	r, err := jsonRequest(http.MethodPatch, "/users/me", in)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := c.do(ctx, r, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdatePasswordMe(ctx context.Context, current, next string) (*models.Message, error) {
	r, err := jsonRequest(http.MethodPatch, "/users/me/password", models.UpdatePassword{
		CurrentPassword: current,
		NewPassword:     next,
	})
	if err != nil {
		return nil, err
	}
	var m models.Message
	if err := c.do(ctx, r, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) DeleteUserMe(ctx context.Context) (*models.Message, error) {
	var m models.Message
	if err := c.do(ctx, request{method: http.MethodDelete, path: "/users/me"}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) RegisterUser(ctx context.Context, in models.UserRegister) (*models.User, error) {
	r, err := jsonRequest(http.MethodPost, "/users/signup", in)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := c.do(ctx, r, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListIncome(ctx context.Context, q TransactionQuery) (*models.Page[models.Transaction], error) {
	return c.listTransactions(ctx, "/income/", q)
}

func (c *Client) ListExpenses(ctx context.Context, q TransactionQuery) (*models.Page[models.Transaction], error) {
	return c.listTransactions(ctx, "/expenses/", q)
}

func (c *Client) listTransactions(ctx context.Context, path string, q TransactionQuery) (*models.Page[models.Transaction], error) {
	var p models.Page[models.Transaction]
	if err := c.do(ctx, request{method: http.MethodGet, path: path, query: q.Values()}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
