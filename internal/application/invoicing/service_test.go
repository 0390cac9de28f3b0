package invoicing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk-hq/tripdesk/internal/domain/invoice"
	"github.com/tripdesk-hq/tripdesk/internal/shared/errors"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
)

type fakeInvoiceRepo struct {
	byID   map[uint]*invoice.Invoice
	nextID uint
	seq    int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{byID: make(map[uint]*invoice.Invoice)}
}

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *invoice.Invoice) error {
	f.nextID++
	inv.SetID(f.nextID)
	f.byID[f.nextID] = inv
	return nil
}

func (f *fakeInvoiceRepo) Update(_ context.Context, inv *invoice.Invoice) error {
	f.byID[inv.ID()] = inv
	return nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, id uint) (*invoice.Invoice, error) {
	return f.byID[id], nil
}

func (f *fakeInvoiceRepo) ListByOrganizationID(_ context.Context, organizationID uint, limit, offset int) ([]*invoice.Invoice, int64, error) {
	var out []*invoice.Invoice
	for _, inv := range f.byID {
		if inv.OrganizationID() == organizationID {
			out = append(out, inv)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeInvoiceRepo) NextInvoiceNumber(_ context.Context, _ uint, prefix string) (string, error) {
	f.seq++
	return fmt.Sprintf("%s-%04d", prefix, f.seq), nil
}

type fakeBillingProfiles struct {
	profile BillingProfile
	err     error
}

func (f *fakeBillingProfiles) BillingProfile(_ context.Context, _ uint) (BillingProfile, error) {
	return f.profile, f.err
}

func newTestService(repo *fakeInvoiceRepo, profiles *fakeBillingProfiles) *ServiceImpl {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return NewService(repo, profiles, "INR", logger.NewLogger()).
		WithClock(func() time.Time { return now })
}

func TestCreate_IntraStateInvoice(t *testing.T) {
	repo := newFakeInvoiceRepo()
	profiles := &fakeBillingProfiles{profile: BillingProfile{BillingState: "KARNATAKA"}}
	svc := newTestService(repo, profiles)

	place := "Karnataka"
	dto, err := svc.Create(context.Background(), &CreateInvoiceRequest{
		OrganizationID: 7,
		PlaceOfSupply:  &place,
		Items: []invoice.LineItemInput{
			{Description: "Hampi heritage tour", Quantity: 4, UnitPrice: 5000, TaxRate: 18},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-202603-0001", dto.InvoiceNumber)
	assert.Equal(t, "INR", dto.Currency)
	assert.Equal(t, "draft", dto.Status)
	assert.Equal(t, 20000.0, dto.Subtotal)
	assert.Equal(t, 3600.0, dto.TaxTotal)
	assert.Equal(t, 23600.0, dto.GrandTotal)
	assert.Equal(t, 1800.0, dto.TaxSplit.CGST)
	assert.Equal(t, 1800.0, dto.TaxSplit.SGST)
	assert.Equal(t, 0.0, dto.TaxSplit.IGST)
}

func TestCreate_InvoiceNumbersAreSequential(t *testing.T) {
	repo := newFakeInvoiceRepo()
	profiles := &fakeBillingProfiles{profile: BillingProfile{BillingState: "KARNATAKA"}}
	svc := newTestService(repo, profiles)

	items := []invoice.LineItemInput{
		{Description: "Visa assistance", Quantity: 1, UnitPrice: 2500, TaxRate: 18},
	}

	first, err := svc.Create(context.Background(), &CreateInvoiceRequest{OrganizationID: 7, Items: items})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), &CreateInvoiceRequest{OrganizationID: 7, Items: items})
	require.NoError(t, err)

	assert.Equal(t, "INV-202603-0001", first.InvoiceNumber)
	assert.Equal(t, "INV-202603-0002", second.InvoiceNumber)
}

func TestCreate_RejectsInvalidItems(t *testing.T) {
	svc := newTestService(newFakeInvoiceRepo(), &fakeBillingProfiles{})

	_, err := svc.Create(context.Background(), &CreateInvoiceRequest{
		OrganizationID: 7,
		Items:          nil,
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestGet_ScopedToOrganization(t *testing.T) {
	repo := newFakeInvoiceRepo()
	profiles := &fakeBillingProfiles{profile: BillingProfile{BillingState: "KARNATAKA"}}
	svc := newTestService(repo, profiles)

	dto, err := svc.Create(context.Background(), &CreateInvoiceRequest{
		OrganizationID: 7,
		Items: []invoice.LineItemInput{
			{Description: "Airport transfer", Quantity: 2, UnitPrice: 900, TaxRate: 5},
		},
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), 7, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.InvoiceNumber, got.InvoiceNumber)

	_, err = svc.Get(context.Background(), 8, dto.ID)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestRecordPayment_AdvancesStatus(t *testing.T) {
	repo := newFakeInvoiceRepo()
	profiles := &fakeBillingProfiles{profile: BillingProfile{BillingState: "KARNATAKA"}}
	svc := newTestService(repo, profiles)

	dto, err := svc.Create(context.Background(), &CreateInvoiceRequest{
		OrganizationID: 7,
		Items: []invoice.LineItemInput{
			{Description: "Ladakh expedition", Quantity: 1, UnitPrice: 50000, TaxRate: 18},
		},
	})
	require.NoError(t, err)

	issued, err := svc.Issue(context.Background(), 7, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, "issued", issued.Status)

	partial, err := svc.RecordPayment(context.Background(), 7, dto.ID, &RecordPaymentRequest{Amount: 9000})
	require.NoError(t, err)
	assert.Equal(t, "partially_paid", partial.Status)
	assert.Equal(t, 50000.0, partial.Outstanding)

	paid, err := svc.RecordPayment(context.Background(), 7, dto.ID, &RecordPaymentRequest{Amount: 50000})
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
	assert.Equal(t, 0.0, paid.Outstanding)
}
