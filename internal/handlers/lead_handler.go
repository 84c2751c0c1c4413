package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pipetrack/internal/middleware"
	"pipetrack/internal/models"
	"pipetrack/internal/services"
)

type LeadHandler struct {
	Service *services.LeadService
	Edits   *services.PendingEdits
}

func NewLeadHandler(service *services.LeadService, edits *services.PendingEdits) *LeadHandler {
	return &LeadHandler{Service: service, Edits: edits}
}

// LeadRequest is the create/update body. Quantity and price arrive as
// free-form text or numbers and are coerced, not validated.
type LeadRequest struct {
	Name          string     `json:"name"`
	Company       string     `json:"company"`
	ContactNumber string     `json:"contact_number"`
	Email         string     `json:"email"`
	Product       string     `json:"product"`
	Quantity      textValue  `json:"quantity"`
	Price         textValue  `json:"price"`
	FollowUpDate  *time.Time `json:"follow_up_date"`
}

func (r *LeadRequest) validate() string {
	switch {
	case r.Name == "":
		return "name is required"
	case r.Company == "":
		return "company is required"
	case r.ContactNumber == "":
		return "contact_number is required"
	case r.Email == "":
		return "email is required"
	case r.Product == "":
		return "product is required"
	}
	return ""
}

func (r *LeadRequest) toModel() *models.Lead {
	return &models.Lead{
		Name:          r.Name,
		Company:       r.Company,
		ContactNumber: r.ContactNumber,
		Email:         r.Email,
		Product:       r.Product,
		Quantity:      r.Quantity.Int(),
		Price:         r.Price.Float(),
		FollowUpDate:  r.FollowUpDate,
	}
}

func (h *LeadHandler) Create(c *gin.Context) {
	var req LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	lead := req.toModel()
	if err := h.Service.Create(lead); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)

	leads, err := h.Service.List(
		c.Query("stage"),
		c.Query("search"),
		c.DefaultQuery("sort_by", "created_at"),
		c.DefaultQuery("order", "desc"),
		limit, offset,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list leads"})
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	lead, err := h.Service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if lead == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	lead := req.toModel()
	lead.ID = id
	if err := h.Service.Update(lead); err != nil {
		if errors.Is(err, services.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	updated, _ := h.Service.GetByID(id)
	c.JSON(http.StatusOK, updated)
}

// StageRequest carries a draft stage value.
type StageRequest struct {
	Stage string `json:"stage"`
}

// DraftStage stages a pending stage edit. Nothing is persisted until the
// edit is confirmed.
func (h *LeadHandler) DraftStage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !services.IsValidStage(req.Stage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stage"})
		return
	}
	lead, err := h.Service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if lead == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
		return
	}

	h.Edits.Put(services.EditLeadStage, id, req.Stage)
	c.JSON(http.StatusOK, gin.H{"lead_id": id, "pending_stage": req.Stage})
}

// ConfirmStage commits the pending stage edit through the transition
// saga and reports the structured result.
func (h *LeadHandler) ConfirmStage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	stage, ok := h.Edits.Get(services.EditLeadStage, id)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "no pending stage edit"})
		return
	}

	res, err := h.Service.ChangeStage(id, stage)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLeadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidStage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	middleware.RecordStageChange(string(res.Outcome))
	if res.Outcome == services.OutcomeRejected {
		// Draft is kept so the user can confirm again.
		c.JSON(http.StatusInternalServerError, res)
		return
	}
	h.Edits.Discard(services.EditLeadStage, id)
	c.JSON(http.StatusOK, res)
}

// DiscardStage drops the pending stage edit without touching the store.
func (h *LeadHandler) DiscardStage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !h.Edits.Discard(services.EditLeadStage, id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no pending stage edit"})
		return
	}
	c.Status(http.StatusNoContent)
}
