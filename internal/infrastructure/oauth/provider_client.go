package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"legal-city.backend/internal/domain/entities"
)

// Provider holds the endpoints and credentials of an external identity provider
type Provider struct {
	Name         string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// GoogleProvider returns the Google OAuth2 endpoints
func GoogleProvider(clientID, clientSecret string) Provider {
	return Provider{
		Name:         "google",
		AuthURL:      "https://accounts.google.com/o/oauth2/v2/auth",
		TokenURL:     "https://oauth2.googleapis.com/token",
		UserInfoURL:  "https://www.googleapis.com/oauth2/v2/userinfo",
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

// FacebookProvider returns the Facebook OAuth2 endpoints
func FacebookProvider(clientID, clientSecret string) Provider {
	return Provider{
		Name:         "facebook",
		AuthURL:      "https://www.facebook.com/v12.0/dialog/oauth",
		TokenURL:     "https://graph.facebook.com/v12.0/oauth/access_token",
		UserInfoURL:  "https://graph.facebook.com/me?fields=id,name,email",
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       []string{"email", "public_profile"},
	}
}

// AuthorizationURL builds the provider redirect URL for the given state
func (p Provider) AuthorizationURL(redirectURI, state string) string {
	q := url.Values{}
	q.Set("client_id", p.ClientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("response_type", "code")
	q.Set("scope", strings.Join(p.Scopes, " "))
	q.Set("state", state)
	return p.AuthURL + "?" + q.Encode()
}

// Client encapsulates outbound HTTP calls to external identity providers
type Client interface {
	ExchangeCode(ctx context.Context, provider Provider, code, redirectURI string) (string, error)
	FetchProfile(ctx context.Context, provider Provider, accessToken string) (*entities.OAuthProfile, error)
}

// HTTPClient is the default HTTP implementation
type HTTPClient struct {
	httpClient *http.Client
}

// NewHTTPClient constructs the default provider client
func NewHTTPClient(client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{httpClient: client}
}

// ExchangeCode performs the OAuth authorization-code token exchange and returns
// the provider access token
func (c *HTTPClient) ExchangeCode(ctx context.Context, provider Provider, code, redirectURI string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	form.Set("client_id", provider.ClientID)
	form.Set("client_secret", provider.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, provider.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange failed: %s: %s", provider.Name, resp.Status)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token exchange returned empty access token: %s", provider.Name)
	}
	return token.AccessToken, nil
}

// FetchProfile retrieves the provider profile for an access token
func (c *HTTPClient) FetchProfile(ctx context.Context, provider Provider, accessToken string) (*entities.OAuthProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, provider.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo fetch failed: %s: %s", provider.Name, resp.Status)
	}

	var profile struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode userinfo response: %w", err)
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("provider %s returned no email", provider.Name)
	}

	return &entities.OAuthProfile{
		Provider: provider.Name,
		Email:    profile.Email,
		Name:     profile.Name,
	}, nil
}
