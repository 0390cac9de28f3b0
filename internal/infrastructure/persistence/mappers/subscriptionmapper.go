package mappers

import (
	"github.com/tripdesk-hq/tripdesk/internal/domain/subscription"
	"github.com/tripdesk-hq/tripdesk/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToSnapshot(model *models.SubscriptionModel) *subscription.Snapshot
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

// ToSnapshot converts a persistence row into the read model the
// lifecycle resolver consumes. Unknown statuses and plan ids pass
// through unchanged; the resolver treats them conservatively.
func (m *SubscriptionMapperImpl) ToSnapshot(model *models.SubscriptionModel) *subscription.Snapshot {
	if model == nil {
		return nil
	}

	snapshot := subscription.NewSnapshot(
		model.OrganizationID,
		model.PlanID,
		subscription.Status(model.Status),
		model.TrialEnd,
		model.CancelAtPeriodEnd,
		model.CurrentPeriodEnd,
		model.DowngradePlanID,
		model.CreatedAt,
	)
	return &snapshot
}
