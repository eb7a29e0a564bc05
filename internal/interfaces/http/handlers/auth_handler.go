package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"legal-city.backend/internal/domain/entities"
	domainerrors "legal-city.backend/internal/domain/errors"
	"legal-city.backend/internal/interfaces/http/response"
	"legal-city.backend/internal/usecases"
	"legal-city.backend/pkg/logger"
)

// AuthHandler handles the credential-lifecycle endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// RegisterUser handles client registration
// POST /api/auth/register-user
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	h.register(c, entities.RoleUser)
}

// RegisterLawyer handles lawyer registration
// POST /api/auth/register-lawyer
func (h *AuthHandler) RegisterLawyer(c *gin.Context) {
	h.register(c, entities.RoleLawyer)
}

func (h *AuthHandler) register(c *gin.Context, role entities.AccountRole) {
	var input entities.RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	account, err := h.authUsecase.Register(c.Request.Context(), &input, role)
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			response.Error(c, domainerrors.Conflict("Email already registered"))
			return
		}
		response.Error(c, err)
		return
	}

	logger.Info(c.Request.Context(), "account registered",
		zap.String("email", account.Email),
		zap.String("role", string(account.Role)),
	)

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registration successful. Please check your email for verification code.",
	})
}

// Login handles login for both roles
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrEmailNotVerified):
			response.Error(c, domainerrors.Unauthorized("Please verify your email first"))
		case errors.Is(err, domainerrors.ErrInvalidCredentials):
			response.Error(c, domainerrors.Unauthorized("Invalid credentials"))
		default:
			response.Error(c, err)
		}
		return
	}

	account := authResponse.Account
	response.Success(c, http.StatusOK, gin.H{
		"token": authResponse.Token,
		"user": gin.H{
			"id":    account.ID,
			"name":  account.Name,
			"email": account.Email,
			"role":  account.Role,
		},
	})
}

// VerifyEmail handles email verification
// POST /api/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var input entities.VerifyEmailInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	if err := h.authUsecase.VerifyEmail(c.Request.Context(), &input); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.BadRequest("Invalid verification code"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Email verified successfully",
	})
}

// ForgotPassword handles password-reset requests. The answer is neutral
// whether or not the email is known.
// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input entities.ForgotPasswordInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	if err := h.authUsecase.ForgotPassword(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "If that email is registered, a password reset link has been sent",
	})
}

// ResetPassword handles password-reset completion
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), &input); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.BadRequest("Invalid or expired reset token"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Password reset successfully",
	})
}
