package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripdesk-hq/tripdesk/internal/domain/billing"
	"github.com/tripdesk-hq/tripdesk/internal/domain/entitlement"
	"github.com/tripdesk-hq/tripdesk/internal/infrastructure/cache"
	"github.com/tripdesk-hq/tripdesk/internal/shared/errors"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
	"github.com/tripdesk-hq/tripdesk/internal/shared/utils"
)

// EntitlementService is the evaluation surface the handler depends on.
type EntitlementService interface {
	Evaluate(ctx context.Context, organizationID uint, feature billing.Feature) (*entitlement.FeatureLimitStatus, error)
	EvaluateAll(ctx context.Context, organizationID uint) ([]*entitlement.FeatureLimitStatus, error)
}

type LimitHandler struct {
	service EntitlementService
	cache   cache.FeatureLimitCache
	logger  logger.Interface
}

func NewLimitHandler(service EntitlementService, limitCache cache.FeatureLimitCache) *LimitHandler {
	return &LimitHandler{
		service: service,
		cache:   limitCache,
		logger:  logger.NewLogger(),
	}
}

// GetLimits returns the limit status of every metered feature.
// GET /api/v1/organizations/:id/limits
func (h *LimitHandler) GetLimits(c *gin.Context) {
	organizationID, ok := h.organizationID(c)
	if !ok {
		return
	}

	statuses, err := h.service.EvaluateAll(c.Request.Context(), organizationID)
	if err != nil {
		h.respondEvaluationError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", statuses)
}

// GetFeatureLimit returns the limit status of one feature. Fresh results
// are cached briefly to absorb hot-path pre-checks from the app.
// GET /api/v1/organizations/:id/limits/:feature
func (h *LimitHandler) GetFeatureLimit(c *gin.Context) {
	organizationID, ok := h.organizationID(c)
	if !ok {
		return
	}

	feature := billing.Feature(c.Param("feature"))
	if !feature.IsValid() {
		utils.ErrorResponseWithError(c, errors.NewValidationError("unknown feature"))
		return
	}

	if h.cache != nil {
		if cached, err := h.cache.GetStatus(c.Request.Context(), organizationID, feature); err != nil {
			h.logger.Warnw("limit status cache read failed", "error", err, "organization_id", organizationID)
		} else if cached != nil {
			utils.SuccessResponse(c, http.StatusOK, "", cached)
			return
		}
	}

	status, err := h.service.Evaluate(c.Request.Context(), organizationID, feature)
	if err != nil {
		h.respondEvaluationError(c, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetStatus(c.Request.Context(), organizationID, status); err != nil {
			h.logger.Warnw("limit status cache write failed", "error", err, "organization_id", organizationID)
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "", status)
}

func (h *LimitHandler) organizationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid organization id"))
		return 0, false
	}
	return uint(id), true
}

// respondEvaluationError maps usage-store outages to 503 so clients can
// distinguish "denied" from "cannot answer right now".
func (h *LimitHandler) respondEvaluationError(c *gin.Context, err error) {
	if stderrors.Is(err, entitlement.ErrUsageUnavailable) {
		utils.ErrorResponseWithError(c, errors.NewUnavailableError("usage data is temporarily unavailable"))
		return
	}
	if stderrors.Is(err, billing.ErrUnknownFeature) {
		utils.ErrorResponseWithError(c, errors.NewValidationError("unknown feature"))
		return
	}
	utils.ErrorResponseWithError(c, err)
}
