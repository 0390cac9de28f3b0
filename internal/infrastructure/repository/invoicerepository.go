package repository

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"gorm.io/gorm"

	"github.com/tripdesk-hq/tripdesk/internal/domain/invoice"
	"github.com/tripdesk-hq/tripdesk/internal/infrastructure/persistence/mappers"
	"github.com/tripdesk-hq/tripdesk/internal/infrastructure/persistence/models"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
)

var invoiceNumberSuffixRe = regexp.MustCompile(`-(\d{4,})$`)

type InvoiceRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.InvoiceMapper
	logger logger.Interface
}

func NewInvoiceRepository(
	db *gorm.DB,
	logger logger.Interface,
) invoice.Repository {
	return &InvoiceRepositoryImpl{
		db:     db,
		mapper: mappers.NewInvoiceMapper(),
		logger: logger,
	}
}

func (r *InvoiceRepositoryImpl) Create(ctx context.Context, entity *invoice.Invoice) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map invoice entity to model", "error", err)
		return fmt.Errorf("failed to map invoice entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create invoice in database", "error", err)
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	entity.SetID(model.ID)

	r.logger.Infow("invoice created successfully",
		"id", model.ID,
		"organization_id", model.OrganizationID,
		"invoice_number", model.InvoiceNumber,
	)
	return nil
}

func (r *InvoiceRepositoryImpl) Update(ctx context.Context, entity *invoice.Invoice) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map invoice entity to model", "error", err)
		return fmt.Errorf("failed to map invoice entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update invoice in database", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	return nil
}

func (r *InvoiceRepositoryImpl) GetByID(ctx context.Context, id uint) (*invoice.Invoice, error) {
	var model models.InvoiceModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get invoice by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *InvoiceRepositoryImpl) ListByOrganizationID(
	ctx context.Context,
	organizationID uint,
	limit, offset int,
) ([]*invoice.Invoice, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("organization_id = ?", organizationID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	var rows []*models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list invoices", "organization_id", organizationID, "error", err)
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

// NextInvoiceNumber allocates the next sequential number under the month
// prefix by inspecting the organization's latest matching document.
func (r *InvoiceRepositoryImpl) NextInvoiceNumber(
	ctx context.Context,
	organizationID uint,
	prefix string,
) (string, error) {
	var model models.InvoiceModel

	err := r.db.WithContext(ctx).
		Select("invoice_number").
		Where("organization_id = ? AND invoice_number LIKE ?", organizationID, prefix+"-%").
		Order("created_at DESC").
		First(&model).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		r.logger.Errorw("failed to read latest invoice number", "organization_id", organizationID, "error", err)
		return "", fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	previous := 0
	if match := invoiceNumberSuffixRe.FindStringSubmatch(model.InvoiceNumber); match != nil {
		if n, convErr := strconv.Atoi(match[1]); convErr == nil {
			previous = n
		}
	}

	return fmt.Sprintf("%s-%04d", prefix, previous+1), nil
}
