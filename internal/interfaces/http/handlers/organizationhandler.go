package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tripdesk-hq/tripdesk/internal/shared/errors"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
	"github.com/tripdesk-hq/tripdesk/internal/shared/utils"
)

// BillingProfileWriter updates the seller-side tax identity.
type BillingProfileWriter interface {
	UpdateBillingProfile(ctx context.Context, organizationID uint, gstin, billingState *string) error
}

type OrganizationHandler struct {
	profiles BillingProfileWriter
	logger   logger.Interface
}

func NewOrganizationHandler(profiles BillingProfileWriter) *OrganizationHandler {
	return &OrganizationHandler{
		profiles: profiles,
		logger:   logger.NewLogger(),
	}
}

// UpdateBillingProfileRequest carries the fields an agency can change on
// its tax identity. GSTIN is checked against the registration format.
type UpdateBillingProfileRequest struct {
	GSTIN        *string `json:"gstin" binding:"omitempty,gstin"`
	BillingState *string `json:"billing_state"`
}

// UpdateBillingProfile updates the organization's GSTIN and billing state.
// PUT /api/v1/organizations/:id/billing-profile
func (h *OrganizationHandler) UpdateBillingProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid organization id"))
		return
	}

	var req UpdateBillingProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for billing profile update", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body"))
		return
	}

	// Stored uppercase so jurisdiction comparison stays case-insensitive.
	if req.GSTIN != nil {
		upper := strings.ToUpper(strings.TrimSpace(*req.GSTIN))
		req.GSTIN = &upper
	}
	if req.BillingState != nil {
		upper := strings.ToUpper(strings.TrimSpace(*req.BillingState))
		req.BillingState = &upper
	}

	if err := h.profiles.UpdateBillingProfile(c.Request.Context(), uint(id), req.GSTIN, req.BillingState); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Billing profile updated", nil)
}
