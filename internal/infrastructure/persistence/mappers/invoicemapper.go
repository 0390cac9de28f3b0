package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/tripdesk-hq/tripdesk/internal/domain/invoice"
	"github.com/tripdesk-hq/tripdesk/internal/domain/tax"
	"github.com/tripdesk-hq/tripdesk/internal/infrastructure/persistence/models"
)

type InvoiceMapper interface {
	ToEntity(model *models.InvoiceModel) (*invoice.Invoice, error)
	ToModel(entity *invoice.Invoice) (*models.InvoiceModel, error)
	ToEntities(models []*models.InvoiceModel) ([]*invoice.Invoice, error)
}

type InvoiceMapperImpl struct{}

func NewInvoiceMapper() InvoiceMapper {
	return &InvoiceMapperImpl{}
}

// invoiceMetadata is the JSON document stored in the metadata column.
type invoiceMetadata struct {
	Notes     *string            `json:"notes,omitempty"`
	LineItems []invoice.LineItem `json:"line_items"`
}

func (m *InvoiceMapperImpl) ToEntity(model *models.InvoiceModel) (*invoice.Invoice, error) {
	if model == nil {
		return nil, nil
	}

	var meta invoiceMetadata
	if model.Metadata != nil {
		if err := json.Unmarshal(model.Metadata, &meta); err != nil {
			return nil, fmt.Errorf("failed to unmarshal invoice metadata: %w", err)
		}
	}

	status := invoice.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid invoice status: %s", model.Status)
	}

	entity := invoice.ReconstructInvoice(
		model.ID,
		model.OrganizationID,
		model.InvoiceNumber,
		model.ClientID,
		model.TripID,
		model.Currency,
		status,
		model.IssueDate,
		model.DueDate,
		model.PlaceOfSupply,
		model.SACCode,
		meta.Notes,
		meta.LineItems,
		model.Subtotal,
		model.TaxTotal,
		model.GrandTotal,
		tax.Split{CGST: model.CGSTAmount, SGST: model.SGSTAmount, IGST: model.IGSTAmount},
		model.AmountPaid,
		model.CreatedAt,
		model.UpdatedAt,
	)
	return entity, nil
}

func (m *InvoiceMapperImpl) ToModel(entity *invoice.Invoice) (*models.InvoiceModel, error) {
	if entity == nil {
		return nil, nil
	}

	meta := invoiceMetadata{
		Notes:     entity.Notes(),
		LineItems: entity.Items(),
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoice metadata: %w", err)
	}

	split := entity.TaxSplit()
	return &models.InvoiceModel{
		ID:             entity.ID(),
		OrganizationID: entity.OrganizationID(),
		InvoiceNumber:  entity.InvoiceNumber(),
		ClientID:       entity.ClientID(),
		TripID:         entity.TripID(),
		Currency:       entity.Currency(),
		Status:         entity.Status().String(),
		IssueDate:      entity.IssueDate(),
		DueDate:        entity.DueDate(),
		PlaceOfSupply:  entity.PlaceOfSupply(),
		SACCode:        entity.SACCode(),
		Subtotal:       entity.Subtotal(),
		TaxTotal:       entity.TaxTotal(),
		GrandTotal:     entity.GrandTotal(),
		CGSTAmount:     split.CGST,
		SGSTAmount:     split.SGST,
		IGSTAmount:     split.IGST,
		AmountPaid:     entity.AmountPaid(),
		Metadata:       datatypes.JSON(metaJSON),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *InvoiceMapperImpl) ToEntities(rows []*models.InvoiceModel) ([]*invoice.Invoice, error) {
	entities := make([]*invoice.Invoice, 0, len(rows))
	for _, row := range rows {
		entity, err := m.ToEntity(row)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
