// Package authclient resolves bearer tokens into identity assertions by
// delegating to the external auth service's /verify endpoint.
package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/masstest/masstest-backend/internal/authz"
	"github.com/rs/zerolog"
)

// Resolver turns a bearer token into a claims assertion. Implementations
// must degrade every failure to an invalid assertion instead of erroring;
// callers never branch on partially-populated fields.
type Resolver interface {
	Resolve(ctx context.Context, token string) authz.Claims
}

// verifyResponse is the auth service's success payload.
type verifyResponse struct {
	UserID      string   `json:"userId"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	Exp         int64    `json:"exp"` // epoch seconds
}

// Client calls the auth service over HTTP. It holds no state beyond the
// configured endpoint and is safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewClient creates a resolver for the auth service at baseURL. The timeout
// bounds the single outbound call; there is no retry policy, so a slow or
// unreachable oracle yields invalid claims.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Resolve verifies the token against the auth service. An empty token, an
// unreachable service, or any non-200 response yields the invalid assertion.
// Token expiry is reported by the oracle, not re-checked here.
func (c *Client) Resolve(ctx context.Context, token string) authz.Claims {
	if token == "" {
		return authz.Invalid()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/verify", nil)
	if err != nil {
		c.log.Debug().Err(err).Msg("Build verify request failed")
		return authz.Invalid()
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Callers cannot distinguish "bad token" from "oracle down";
		// the debug log is the only place the difference survives.
		c.log.Debug().Err(err).Msg("Auth service unreachable")
		return authz.Invalid()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return authz.Invalid()
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Debug().Err(err).Msg("Decode verify response failed")
		return authz.Invalid()
	}

	return authz.Claims{
		Valid:       true,
		UserID:      body.UserID,
		Roles:       body.Roles,
		Permissions: body.Permissions,
		ExpiresAt:   time.Unix(body.Exp, 0),
	}
}
