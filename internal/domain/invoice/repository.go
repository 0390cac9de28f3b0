package invoice

import "context"

// Repository persists invoice aggregates.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Update(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id uint) (*Invoice, error)
	ListByOrganizationID(ctx context.Context, organizationID uint, limit, offset int) ([]*Invoice, int64, error)
	// NextInvoiceNumber returns the next sequential document number for
	// the organization within the given month prefix, e.g. INV-202603-0007.
	NextInvoiceNumber(ctx context.Context, organizationID uint, prefix string) (string, error)
}
