package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripdesk-hq/tripdesk/internal/domain/billing"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
	"github.com/tripdesk-hq/tripdesk/internal/shared/utils"
)

type PlanHandler struct {
	catalog *billing.Catalog
	logger  logger.Interface
}

func NewPlanHandler(catalog *billing.Catalog) *PlanHandler {
	return &PlanHandler{
		catalog: catalog,
		logger:  logger.NewLogger(),
	}
}

// PlanResponse is the public shape of a catalog plan. Limits marshal an
// unlimited entry as JSON null.
type PlanResponse struct {
	ID           string                                   `json:"id"`
	Tier         string                                   `json:"tier"`
	DisplayName  string                                   `json:"display_name"`
	MonthlyPrice int64                                    `json:"monthly_price"`
	AnnualTotal  *int64                                   `json:"annual_total,omitempty"`
	Limits       map[billing.Feature]billing.FeatureLimit `json:"limits"`
}

func toPlanResponse(plan billing.CanonicalPlan) PlanResponse {
	resp := PlanResponse{
		ID:           plan.ID().String(),
		Tier:         plan.Tier().String(),
		DisplayName:  plan.DisplayName(),
		MonthlyPrice: plan.MonthlyPrice(),
		Limits:       plan.Limits(),
	}
	if total, ok := plan.AnnualTotal(); ok {
		resp.AnnualTotal = &total
	}
	return resp
}

// ListPlans returns every plan in the catalog.
// GET /api/v1/plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans := h.catalog.Plans()
	responses := make([]PlanResponse, len(plans))
	for i, plan := range plans {
		responses[i] = toPlanResponse(plan)
	}
	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// GetPlan returns a single plan by id. Unknown ids resolve to the free
// plan, matching how the rest of the system treats unrecognized plans.
// GET /api/v1/plans/:id
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID := billing.NormalizePlanID(c.Param("id"))
	plan := h.catalog.Lookup(planID)
	utils.SuccessResponse(c, http.StatusOK, "", toPlanResponse(plan))
}
