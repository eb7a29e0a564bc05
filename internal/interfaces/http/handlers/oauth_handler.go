package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "legal-city.backend/internal/domain/errors"
	"legal-city.backend/internal/interfaces/http/response"
	"legal-city.backend/internal/usecases"
	"legal-city.backend/pkg/logger"
)

// OAuthHandler handles the external identity provider redirect endpoints
type OAuthHandler struct {
	oauthUsecase *usecases.OAuthUsecase
	frontendURL  string
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(oauthUsecase *usecases.OAuthUsecase, frontendURL string) *OAuthHandler {
	return &OAuthHandler{
		oauthUsecase: oauthUsecase,
		frontendURL:  frontendURL,
	}
}

// Start redirects the browser to the provider's authorization page
// GET /api/auth/google, GET /api/auth/facebook
func (h *OAuthHandler) Start(provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authURL, err := h.oauthUsecase.AuthorizationURL(provider)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				response.Error(c, domainerrors.NotFound("Unknown provider"))
				return
			}
			response.Error(c, err)
			return
		}

		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

// Callback exchanges the provider callback for a session token and redirects
// to the frontend with the token in a query parameter
// GET /api/auth/google/callback, GET /api/auth/facebook/callback
func (h *OAuthHandler) Callback(provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		state := c.Query("state")

		token, err := h.oauthUsecase.HandleCallback(c.Request.Context(), provider, code, state)
		if err != nil {
			logger.Warn(c.Request.Context(), "oauth callback failed",
				zap.String("provider", provider),
				zap.Error(err),
			)
			switch {
			case errors.Is(err, domainerrors.ErrNotFound):
				response.Error(c, domainerrors.NotFound("Unknown provider"))
			case errors.Is(err, domainerrors.ErrAlreadyExists):
				// A local unverified account owns this email; no silent merge.
				c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/login?error=account_exists")
			default:
				c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/login?error=oauth_failed")
			}
			return
		}

		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/dashboard?token="+token)
	}
}
