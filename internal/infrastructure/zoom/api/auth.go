// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/lsdforum/meeting-raffle/internal/domain"
)

const (
	// OAuthURL is the Zoom Server-to-Server OAuth token endpoint.
	OAuthURL = "https://zoom.us/oauth/token"
	// DefaultTokenValidity is how long a generated JWT stays valid.
	DefaultTokenValidity = 1800 * time.Second
)

// TokenSource produces bearer tokens for Zoom API requests. The token is
// shared read-only across every call in a run; no mid-run refresh happens
// beyond what the underlying source does on its own.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// JWTTokenSource signs short-lived HS256 tokens from an API key/secret pair,
// the legacy Zoom JWT app scheme. The payload carries iss (the API key), iat,
// and exp; no audience claim.
type JWTTokenSource struct {
	APIKey    string
	APISecret string
	Validity  time.Duration

	// now is the clock used for iat/exp; overridable in tests.
	now func() time.Time
}

// NewJWTTokenSource creates a JWT token source with the default validity.
func NewJWTTokenSource(apiKey, apiSecret string) *JWTTokenSource {
	return &JWTTokenSource{
		APIKey:    apiKey,
		APISecret: apiSecret,
		Validity:  DefaultTokenValidity,
		now:       time.Now,
	}
}

// Token generates a signed token. It is a pure function of the clock and the
// credentials; callers that outlive the validity window must call it again.
func (s *JWTTokenSource) Token(_ context.Context) (string, error) {
	if s.APISecret == "" {
		return "", domain.NewAuthError("zoom API secret is empty")
	}

	clock := s.now
	if clock == nil {
		clock = time.Now
	}
	validity := s.Validity
	if validity == 0 {
		validity = DefaultTokenValidity
	}

	iat := clock().Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": s.APIKey,
		"iat": iat,
		"exp": iat + int64(validity/time.Second),
	})

	signed, err := token.SignedString([]byte(s.APISecret))
	if err != nil {
		return "", domain.NewAuthError("failed to sign zoom token", err)
	}
	return signed, nil
}

// OAuthTokenSource obtains tokens through Zoom Server-to-Server OAuth, the
// scheme replacing JWT apps. Token caching and refresh are handled by the
// oauth2 client-credentials flow.
type OAuthTokenSource struct {
	source oauth2.TokenSource
}

// OAuthConfig holds the Server-to-Server OAuth credentials.
type OAuthConfig struct {
	AccountID    string
	ClientID     string
	ClientSecret string
	// Optional: override auth URL for testing
	AuthURL string
}

// NewOAuthTokenSource sets up the client-credentials flow with Zoom's
// account_credentials grant.
func NewOAuthTokenSource(ctx context.Context, config OAuthConfig) *OAuthTokenSource {
	authURL := config.AuthURL
	if authURL == "" {
		authURL = OAuthURL
	}

	oauthConfig := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     authURL,
		EndpointParams: url.Values{
			"grant_type": []string{"account_credentials"},
			"account_id": []string{config.AccountID},
		},
		AuthStyle: oauth2.AuthStyleInParams,
	}

	return &OAuthTokenSource{source: oauthConfig.TokenSource(ctx)}
}

// Token returns a valid access token, fetching or refreshing as needed.
func (s *OAuthTokenSource) Token(_ context.Context) (string, error) {
	token, err := s.source.Token()
	if err != nil {
		return "", domain.NewAuthError("failed to obtain zoom OAuth token", err)
	}
	return token.AccessToken, nil
}
