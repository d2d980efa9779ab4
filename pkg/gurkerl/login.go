package gurkerl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	pkgerrors "github.com/pasogott/gurkerlcli/pkg/errors"
)

const loginPath = "/services/frontend-service/login"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Login posts credentials to the login endpoint and returns the session
// cookies the server hands out, collected across the whole redirect chain.
// The client's own cookie map is not used: login always starts a fresh
// session.
func (c *Client) Login(ctx context.Context, email, password string) (map[string]string, error) {
	payload, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal login request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(loginPath), bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build login request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-origin", "WEB")

	cookies := map[string]string{}

	// Redirect hops can also set cookies, so they are collected hop by hop
	// instead of relying on a jar keyed by cookie paths.
	loginClient := &http.Client{
		Timeout:   c.httpClient.Timeout,
		Transport: c.httpClient.Transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if req.Response != nil {
				for _, ck := range req.Response.Cookies() {
					cookies[ck.Name] = ck.Value
				}
			}
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			return nil
		},
	}

	c.logg.Debugf(ctx, map[string]any{"method": http.MethodPost, "path": loginPath}, "api request")

	resp, err := loginClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "login request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	c.logg.Debugf(ctx, map[string]any{
		"status": resp.StatusCode,
		"method": http.MethodPost,
		"url":    resp.Request.URL.String(),
	}, "api response")

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}
	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized,
			fmt.Sprintf("login failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	for _, ck := range resp.Cookies() {
		cookies[ck.Name] = ck.Value
	}

	if len(cookies) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no session cookie received from server")
	}

	return cookies, nil
}
