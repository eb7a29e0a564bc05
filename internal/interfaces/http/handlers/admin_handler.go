package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "legal-city.backend/internal/domain/errors"
	"legal-city.backend/internal/interfaces/http/response"
	"legal-city.backend/internal/usecases"
)

// AdminHandler handles the admin lawyer-verification endpoints
type AdminHandler struct {
	adminUsecase *usecases.AdminUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
	}
}

// ListUnverifiedLawyers lists lawyer accounts awaiting verification
// GET /api/admin/lawyers/unverified
func (h *AdminHandler) ListUnverifiedLawyers(c *gin.Context) {
	accounts, err := h.adminUsecase.ListUnverifiedLawyers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	lawyers := make([]gin.H, 0, len(accounts))
	for _, a := range accounts {
		lawyers = append(lawyers, gin.H{
			"id":              a.ID,
			"name":            a.Name,
			"email":           a.Email,
			"registration_id": a.RegistrationID,
			"law_firm":        a.LawFirm,
			"speciality":      a.Speciality,
			"address":         a.Address,
			"zip_code":        a.ZipCode,
			"created_at":      a.CreatedAt,
		})
	}

	response.Success(c, http.StatusOK, lawyers)
}

// VerifyLawyer marks a lawyer's credentials as verified
// PUT /api/admin/verify-lawyer/:id
func (h *AdminHandler) VerifyLawyer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid lawyer id"))
		return
	}

	if err := h.adminUsecase.VerifyLawyer(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Lawyer not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Lawyer verified successfully",
	})
}
