package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tripdesk-hq/tripdesk/internal/domain/subscription"
	"github.com/tripdesk-hq/tripdesk/internal/infrastructure/persistence/mappers"
	"github.com/tripdesk-hq/tripdesk/internal/infrastructure/persistence/models"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
)

// accessGrantingStatuses are the statuses that make a subscription row
// the organization's current one.
var accessGrantingStatuses = []string{"active", "trialing"}

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(
	db *gorm.DB,
	logger logger.Interface,
) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) CurrentByOrganizationID(ctx context.Context, organizationID uint) (*subscription.Snapshot, error) {
	var model models.SubscriptionModel

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND status IN ?", organizationID, accessGrantingStatuses).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get current subscription", "organization_id", organizationID, "error", err)
		return nil, fmt.Errorf("failed to get current subscription: %w", err)
	}

	return r.mapper.ToSnapshot(&model), nil
}
