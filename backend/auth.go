package backend

import (
	"context"
	"log/slog"
	"net/http"
)

// Login exchanges credentials for a bearer token and the principal's
// display name and role. The token is opaque to the console; it is stored
// and replayed, never inspected.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", creds, &result)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "logged in against platform", slog.String("username", result.Username), slog.String("role", result.Role))

	return &result, nil
}
