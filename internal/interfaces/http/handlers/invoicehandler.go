package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripdesk-hq/tripdesk/internal/application/invoicing"
	"github.com/tripdesk-hq/tripdesk/internal/shared/errors"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
	"github.com/tripdesk-hq/tripdesk/internal/shared/utils"
)

type InvoiceHandler struct {
	service *invoicing.ServiceImpl
	logger  logger.Interface
}

func NewInvoiceHandler(service *invoicing.ServiceImpl) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		logger:  logger.NewLogger(),
	}
}

// CreateInvoice creates a draft invoice for the organization.
// POST /api/v1/organizations/:id/invoices
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	organizationID, ok := h.organizationID(c)
	if !ok {
		return
	}

	var req invoicing.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create invoice", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body"))
		return
	}
	req.OrganizationID = organizationID

	dto, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto, "Invoice created successfully")
}

// ListInvoices returns a page of the organization's invoices.
// GET /api/v1/organizations/:id/invoices
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	organizationID, ok := h.organizationID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}

	dtos, total, err := h.service.List(c.Request.Context(), organizationID, pageSize, (page-1)*pageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dtos, total, page, pageSize)
}

// GetInvoice returns one invoice.
// GET /api/v1/organizations/:id/invoices/:invoice_id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	organizationID, invoiceID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	dto, err := h.service.Get(c.Request.Context(), organizationID, invoiceID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto)
}

// IssueInvoice moves a draft invoice into circulation.
// POST /api/v1/organizations/:id/invoices/:invoice_id/issue
func (h *InvoiceHandler) IssueInvoice(c *gin.Context) {
	organizationID, invoiceID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	dto, err := h.service.Issue(c.Request.Context(), organizationID, invoiceID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice issued", dto)
}

// RecordPayment applies a payment to an issued invoice.
// POST /api/v1/organizations/:id/invoices/:invoice_id/payments
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	organizationID, invoiceID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req invoicing.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for record payment", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body"))
		return
	}

	dto, err := h.service.RecordPayment(c.Request.Context(), organizationID, invoiceID, &req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment recorded", dto)
}

// CancelInvoice voids an unpaid invoice.
// POST /api/v1/organizations/:id/invoices/:invoice_id/cancel
func (h *InvoiceHandler) CancelInvoice(c *gin.Context) {
	organizationID, invoiceID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	dto, err := h.service.Cancel(c.Request.Context(), organizationID, invoiceID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice cancelled", dto)
}

func (h *InvoiceHandler) organizationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid organization id"))
		return 0, false
	}
	return uint(id), true
}

func (h *InvoiceHandler) pathIDs(c *gin.Context) (uint, uint, bool) {
	organizationID, ok := h.organizationID(c)
	if !ok {
		return 0, 0, false
	}
	invoiceID, err := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	if err != nil || invoiceID == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid invoice id"))
		return 0, 0, false
	}
	return organizationID, uint(invoiceID), true
}
