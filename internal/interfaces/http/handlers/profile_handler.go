package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"legal-city.backend/internal/domain/entities"
	domainerrors "legal-city.backend/internal/domain/errors"
	"legal-city.backend/internal/interfaces/http/middleware"
	"legal-city.backend/internal/interfaces/http/response"
	"legal-city.backend/internal/usecases"
)

// ProfileHandler handles the authenticated account's profile endpoints
type ProfileHandler struct {
	profileUsecase *usecases.ProfileUsecase
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileUsecase *usecases.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
	}
}

// GetMe returns the authenticated account's profile
// GET /api/auth/me
func (h *ProfileHandler) GetMe(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	account, err := h.profileUsecase.Get(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	profile := gin.H{
		"id":            account.ID,
		"name":          account.Name,
		"username":      account.Username,
		"email":         account.Email,
		"role":          account.Role,
		"address":       account.Address,
		"zip_code":      account.ZipCode,
		"city":          account.City,
		"state":         account.State,
		"country":       account.Country,
		"mobile_number": account.MobileNumber,
	}
	if account.Role == entities.RoleLawyer {
		profile["registration_id"] = account.RegistrationID
		profile["law_firm"] = account.LawFirm
		profile["speciality"] = account.Speciality
		profile["lawyer_verified"] = account.LawyerVerified
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdateMe overwrites the authenticated account's profile fields
// PUT /api/auth/me
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	var input entities.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	if err := h.profileUsecase.Update(c.Request.Context(), accountID, &input); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Profile updated successfully",
	})
}

// DeleteMe deletes the authenticated account
// DELETE /api/auth/me
func (h *ProfileHandler) DeleteMe(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	if err := h.profileUsecase.Delete(c.Request.Context(), accountID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Account deleted successfully",
	})
}
