package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"pipetrack/internal/middleware"
	"pipetrack/internal/models"
	"pipetrack/internal/pdf"
	"pipetrack/internal/repositories"
	"pipetrack/internal/services"
)

type OrderHandler struct {
	Service *services.OrderService
	Edits   *services.PendingEdits
	PDF     pdf.Generator
}

func NewOrderHandler(service *services.OrderService, edits *services.PendingEdits, pdfGen pdf.Generator) *OrderHandler {
	return &OrderHandler{Service: service, Edits: edits, PDF: pdfGen}
}

// OrderRequest is the create body. lead_id comes from a select widget and
// may arrive as text; dispatch_date is a bare yyyy-mm-dd.
type OrderRequest struct {
	LeadID         textValue `json:"lead_id"`
	Status         string    `json:"status"`
	Courier        string    `json:"courier"`
	TrackingNumber string    `json:"tracking_number"`
	DispatchDate   string    `json:"dispatch_date"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	leadID := req.LeadID.Int()
	if leadID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lead_id is required"})
		return
	}

	order := &models.Order{
		LeadID:         leadID,
		Status:         req.Status,
		Courier:        req.Courier,
		TrackingNumber: req.TrackingNumber,
	}
	if req.DispatchDate != "" {
		d, err := time.Parse("2006-01-02", req.DispatchDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dispatch_date"})
			return
		}
		order.DispatchDate = &d
	}

	if err := h.Service.Create(order); err != nil {
		switch {
		case errors.Is(err, services.ErrLeadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrLeadNotEligible),
			errors.Is(err, repositories.ErrDuplicateOrder):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)

	orders, err := h.Service.List(
		c.Query("status"),
		c.Query("search"),
		c.DefaultQuery("sort_by", "dispatch_date"),
		c.DefaultQuery("order", "desc"),
		limit, offset,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.Service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// EligibleLeads lists won leads with no order yet, for the order form.
func (h *OrderHandler) EligibleLeads(c *gin.Context) {
	leads, err := h.Service.EligibleLeads()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if leads == nil {
		leads = []models.EligibleLead{}
	}
	c.JSON(http.StatusOK, leads)
}

type StatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) DraftStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !services.IsValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	order, err := h.Service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	h.Edits.Put(services.EditOrderStatus, id, req.Status)
	c.JSON(http.StatusOK, gin.H{"order_id": id, "pending_status": req.Status})
}

// ConfirmStatus commits the pending status edit. Confirming Dispatched
// triggers the receipt email at most once per confirm.
func (h *OrderHandler) ConfirmStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	status, ok := h.Edits.Get(services.EditOrderStatus, id)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "no pending status edit"})
		return
	}

	res, err := h.Service.ChangeStatus(id, status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if res.ReceiptSent {
		middleware.RecordReceiptEmail("sent")
	} else if res.Outcome == services.OutcomePartiallyApplied {
		middleware.RecordReceiptEmail("failed")
	}
	if res.Outcome == services.OutcomeRejected {
		c.JSON(http.StatusInternalServerError, res)
		return
	}
	h.Edits.Discard(services.EditOrderStatus, id)
	c.JSON(http.StatusOK, res)
}

func (h *OrderHandler) DiscardStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !h.Edits.Discard(services.EditOrderStatus, id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no pending status edit"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Receipt renders and serves the dispatch receipt PDF.
func (h *OrderHandler) Receipt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.Service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if order.Status != models.StatusDispatched {
		c.JSON(http.StatusConflict, gin.H{"error": "order is not dispatched"})
		return
	}

	path, err := h.PDF.GenerateReceipt(pdf.ReceiptData{
		OrderID:        order.ID,
		Name:           order.LeadName,
		Product:        order.Product,
		Price:          order.Price,
		Quantity:       order.Quantity,
		TrackingNumber: order.TrackingNumber,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
