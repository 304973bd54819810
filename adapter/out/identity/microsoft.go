// Package identity provides the Microsoft identity platform adapter.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/goccy/go-json"

	"quotable_server/core/domain"
	"quotable_server/core/port/out"
	"quotable_server/pkg/apperr"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

// Microsoft implements out.IdentityProvider over the Azure AD v2 endpoints.
type Microsoft struct {
	config *oauth2.Config
}

// Config for the Microsoft identity adapter.
type Config struct {
	ClientID     string
	ClientSecret string
	TenantID     string
	RedirectURL  string
	Scopes       []string
}

// NewMicrosoft creates the adapter. TenantID may be "common" for multi-tenant
// apps.
func NewMicrosoft(cfg Config) *Microsoft {
	tenant := cfg.TenantID
	if tenant == "" {
		tenant = "common"
	}
	return &Microsoft{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     microsoft.AzureADEndpoint(tenant),
		},
	}
}

// AuthCodeURL builds the authorization URL with state as the correlation
// token.
func (m *Microsoft) AuthCodeURL(state string) string {
	return m.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token payload. The returned
// error carries the provider's error description when one is present.
func (m *Microsoft) Exchange(ctx context.Context, code string) (*domain.TokenPayload, error) {
	token, err := m.config.Exchange(ctx, code)
	if err != nil {
		return nil, apperr.OAuthFailed(exchangeErrorMessage(err), err)
	}

	payload := &domain.TokenPayload{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry,
	}
	if raw, err := json.Marshal(token); err == nil {
		payload.Raw = raw
	}
	return payload, nil
}

// exchangeErrorMessage surfaces the provider's error_description when the
// token endpoint rejected the code.
func exchangeErrorMessage(err error) string {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		var body struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		if jsonErr := json.Unmarshal(retrieveErr.Body, &body); jsonErr == nil {
			if body.ErrorDescription != "" {
				return body.ErrorDescription
			}
			if body.Error != "" {
				return body.Error
			}
		}
		return strings.TrimSpace(string(retrieveErr.Body))
	}
	return err.Error()
}

var _ out.IdentityProvider = (*Microsoft)(nil)
