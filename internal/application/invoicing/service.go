// Package invoicing assembles GST invoices for organizations: it prices
// the submitted line items, apportions the tax between CGST/SGST/IGST
// from the seller's billing state, and persists the document.
package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/tripdesk-hq/tripdesk/internal/domain/invoice"
	"github.com/tripdesk-hq/tripdesk/internal/shared/biztime"
	"github.com/tripdesk-hq/tripdesk/internal/shared/errors"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
)

// BillingProfile is the seller-side tax identity of an organization.
type BillingProfile struct {
	BillingState string
	GSTIN        string
}

// BillingProfileReader loads the organization's tax identity.
type BillingProfileReader interface {
	BillingProfile(ctx context.Context, organizationID uint) (BillingProfile, error)
}

// ServiceImpl implements invoice assembly and lifecycle operations.
type ServiceImpl struct {
	invoiceRepo     invoice.Repository
	billingProfiles BillingProfileReader
	defaultCurrency string
	logger          logger.Interface

	now func() time.Time
}

// NewService creates a new invoicing service.
func NewService(
	invoiceRepo invoice.Repository,
	billingProfiles BillingProfileReader,
	defaultCurrency string,
	logger logger.Interface,
) *ServiceImpl {
	if defaultCurrency == "" {
		defaultCurrency = "INR"
	}
	return &ServiceImpl{
		invoiceRepo:     invoiceRepo,
		billingProfiles: billingProfiles,
		defaultCurrency: defaultCurrency,
		logger:          logger,
		now:             biztime.NowUTC,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *ServiceImpl) WithClock(now func() time.Time) *ServiceImpl {
	s.now = now
	return s
}

// Create validates the request, prices the items, and stores a draft
// invoice with a fresh sequential document number.
func (s *ServiceImpl) Create(ctx context.Context, req *CreateInvoiceRequest) (*InvoiceDTO, error) {
	if req.OrganizationID == 0 {
		return nil, errors.NewValidationError("organization id is required")
	}
	if err := invoice.ValidateLineItems(req.Items); err != nil {
		return nil, err
	}

	profile, err := s.billingProfiles.BillingProfile(ctx, req.OrganizationID)
	if err != nil {
		s.logger.Errorw("failed to load billing profile",
			"error", err,
			"organization_id", req.OrganizationID,
		)
		return nil, err
	}

	now := s.now()
	number, err := s.invoiceRepo.NextInvoiceNumber(ctx, req.OrganizationID, monthPrefix(now))
	if err != nil {
		s.logger.Errorw("failed to allocate invoice number",
			"error", err,
			"organization_id", req.OrganizationID,
		)
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	inv, err := invoice.NewInvoice(
		req.OrganizationID,
		number,
		currency,
		profile.BillingState,
		req.PlaceOfSupply,
		req.Items,
		now,
	)
	if err != nil {
		return nil, err
	}
	inv.SetClient(req.ClientID)
	inv.SetTrip(req.TripID)
	inv.SetDueDate(req.DueDate)
	inv.SetSACCode(req.SACCode)
	inv.SetNotes(req.Notes)

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		s.logger.Errorw("failed to create invoice",
			"error", err,
			"organization_id", req.OrganizationID,
			"invoice_number", number,
		)
		return nil, err
	}

	s.logger.Infow("invoice created",
		"organization_id", req.OrganizationID,
		"invoice_number", number,
		"grand_total", inv.GrandTotal(),
	)
	return ToInvoiceDTO(inv), nil
}

// Get loads one invoice, scoped to the owning organization.
func (s *ServiceImpl) Get(ctx context.Context, organizationID, invoiceID uint) (*InvoiceDTO, error) {
	inv, err := s.loadOwned(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, err
	}
	return ToInvoiceDTO(inv), nil
}

// List returns a page of the organization's invoices plus the total count.
func (s *ServiceImpl) List(ctx context.Context, organizationID uint, limit, offset int) ([]*InvoiceDTO, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	invoices, total, err := s.invoiceRepo.ListByOrganizationID(ctx, organizationID, limit, offset)
	if err != nil {
		s.logger.Errorw("failed to list invoices",
			"error", err,
			"organization_id", organizationID,
		)
		return nil, 0, err
	}

	dtos := make([]*InvoiceDTO, len(invoices))
	for i, inv := range invoices {
		dtos[i] = ToInvoiceDTO(inv)
	}
	return dtos, total, nil
}

// Issue moves a draft invoice into circulation.
func (s *ServiceImpl) Issue(ctx context.Context, organizationID, invoiceID uint) (*InvoiceDTO, error) {
	inv, err := s.loadOwned(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := inv.Issue(s.now()); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return ToInvoiceDTO(inv), nil
}

// RecordPayment applies a payment and advances the invoice status.
func (s *ServiceImpl) RecordPayment(ctx context.Context, organizationID, invoiceID uint, req *RecordPaymentRequest) (*InvoiceDTO, error) {
	inv, err := s.loadOwned(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := inv.RecordPayment(req.Amount, s.now()); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Infow("invoice payment recorded",
		"organization_id", organizationID,
		"invoice_id", invoiceID,
		"amount", req.Amount,
		"status", inv.Status(),
	)
	return ToInvoiceDTO(inv), nil
}

// Cancel voids an unpaid invoice.
func (s *ServiceImpl) Cancel(ctx context.Context, organizationID, invoiceID uint) (*InvoiceDTO, error) {
	inv, err := s.loadOwned(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := inv.Cancel(s.now()); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return ToInvoiceDTO(inv), nil
}

func (s *ServiceImpl) loadOwned(ctx context.Context, organizationID, invoiceID uint) (*invoice.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.OrganizationID() != organizationID {
		return nil, errors.NewNotFoundError("invoice not found")
	}
	return inv, nil
}

// monthPrefix builds the document number prefix for the UTC month of t,
// e.g. INV-202603.
func monthPrefix(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("INV-%04d%02d", u.Year(), int(u.Month()))
}
