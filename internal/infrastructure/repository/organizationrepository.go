package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tripdesk-hq/tripdesk/internal/application/invoicing"
	"github.com/tripdesk-hq/tripdesk/internal/domain/billing"
	"github.com/tripdesk-hq/tripdesk/internal/infrastructure/persistence/models"
	"github.com/tripdesk-hq/tripdesk/internal/shared/errors"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
)

// OrganizationRepositoryImpl serves both the entitlement fallback-tier
// lookup and the invoicing billing-profile lookup from the same table.
type OrganizationRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewOrganizationRepository(
	db *gorm.DB,
	logger logger.Interface,
) *OrganizationRepositoryImpl {
	return &OrganizationRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// FallbackTier returns the organization's stored tier label. Missing
// organizations resolve to the free tier rather than an error; callers
// use this on the read path where denial is the safe default.
func (r *OrganizationRepositoryImpl) FallbackTier(ctx context.Context, organizationID uint) (billing.Tier, error) {
	var model models.OrganizationModel

	err := r.db.WithContext(ctx).
		Select("tier").
		First(&model, organizationID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return billing.TierFree, nil
		}
		r.logger.Errorw("failed to get organization tier", "organization_id", organizationID, "error", err)
		return "", fmt.Errorf("failed to get organization tier: %w", err)
	}

	return billing.Tier(model.Tier), nil
}

// BillingProfile returns the seller-side tax identity used on invoices.
func (r *OrganizationRepositoryImpl) BillingProfile(ctx context.Context, organizationID uint) (invoicing.BillingProfile, error) {
	var model models.OrganizationModel

	err := r.db.WithContext(ctx).
		Select("gstin", "billing_state").
		First(&model, organizationID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return invoicing.BillingProfile{}, errors.NewNotFoundError("organization not found")
		}
		r.logger.Errorw("failed to get organization billing profile", "organization_id", organizationID, "error", err)
		return invoicing.BillingProfile{}, fmt.Errorf("failed to get organization billing profile: %w", err)
	}

	profile := invoicing.BillingProfile{}
	if model.BillingState != nil {
		profile.BillingState = *model.BillingState
	}
	if model.GSTIN != nil {
		profile.GSTIN = *model.GSTIN
	}
	return profile, nil
}

// UpdateBillingProfile updates the organization's GSTIN and billing state.
// Nil fields are left untouched.
func (r *OrganizationRepositoryImpl) UpdateBillingProfile(ctx context.Context, organizationID uint, gstin, billingState *string) error {
	updates := map[string]interface{}{}
	if gstin != nil {
		updates["gstin"] = *gstin
	}
	if billingState != nil {
		updates["billing_state"] = *billingState
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.OrganizationModel{}).
		Where("id = ?", organizationID).
		Updates(updates)
	if result.Error != nil {
		r.logger.Errorw("failed to update billing profile", "organization_id", organizationID, "error", result.Error)
		return fmt.Errorf("failed to update billing profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("organization not found")
	}

	return nil
}
