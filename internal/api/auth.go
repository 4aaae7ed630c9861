// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
)

// User identifies an authenticated account as returned by the backend.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// loginRequest is the payload for POST /auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the successful response from POST /auth/login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// signupRequest is the payload for POST /auth/signup.
type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse is the response from POST /auth/signup.
type SignupResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// Login exchanges credentials for a bearer token and account identity.
// Rejected credentials surface as ErrUnauthorized.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup registers a new account. The backend does not log the account in;
// callers flip back to the login form on success. Registration counts as
// successful on any 2xx status, or when the body carries a true success
// flag despite the status code.
func (c *Client) Signup(ctx context.Context, username, email, password string) (*SignupResponse, error) {
	var resp SignupResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/signup", signupRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && resp.Success {
			return &resp, nil
		}
		return nil, err
	}
	return &resp, nil
}
