package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tripdesk-hq/tripdesk/internal/domain/billing"
	"github.com/tripdesk-hq/tripdesk/internal/domain/subscription"
	"github.com/tripdesk-hq/tripdesk/internal/shared/constants"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
)

// featureTables maps each metered feature to the table whose live rows
// are counted against the limit.
var featureTables = map[billing.Feature]string{
	billing.FeatureClients:     constants.TableClients,
	billing.FeatureTrips:       constants.TableTrips,
	billing.FeatureProposals:   constants.TableProposals,
	billing.FeatureTemplates:   constants.TableTourTemplates,
	billing.FeatureTeamMembers: constants.TableTeamMembers,
	billing.FeatureAIRequests:  constants.TableAIRequests,
}

type UsageRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUsageRepository(
	db *gorm.DB,
	logger logger.Interface,
) subscription.UsageReader {
	return &UsageRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// CountFeatureUsage counts the organization's rows for the feature,
// bounded below by since for windowed features. A query failure is
// returned as an error, never as a zero count.
func (r *UsageRepositoryImpl) CountFeatureUsage(
	ctx context.Context,
	organizationID uint,
	feature billing.Feature,
	since *time.Time,
) (int64, error) {
	table, ok := featureTables[feature]
	if !ok {
		return 0, billing.ErrUnknownFeature
	}

	query := r.db.WithContext(ctx).
		Table(table).
		Where("organization_id = ?", organizationID)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	// ai_requests is an append-only audit table without soft deletes
	if feature != billing.FeatureAIRequests {
		query = query.Where("deleted_at IS NULL")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count feature usage",
			"organization_id", organizationID,
			"feature", feature,
			"error", err,
		)
		return 0, fmt.Errorf("failed to count %s usage: %w", feature, err)
	}

	return count, nil
}
