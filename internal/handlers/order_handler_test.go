package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pipetrack/internal/models"
	"pipetrack/internal/repositories"
	"pipetrack/internal/services"
)

func orderRouter(leadRepo *MockLeadStore, orderRepo *MockOrderStore, sender services.ReceiptSender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewOrderService(orderRepo, leadRepo, sender)
	edits := services.NewPendingEdits()
	h := NewOrderHandler(svc, edits, nil)

	r := gin.New()
	r.GET("/orders/eligible-leads", h.EligibleLeads)
	r.POST("/orders", h.Create)
	r.POST("/orders/:id/status", h.DraftStatus)
	r.POST("/orders/:id/status/confirm", h.ConfirmStatus)
	return r
}

func TestCreateOrderForWonLead(t *testing.T) {
	leadRepo := new(MockLeadStore)
	orderRepo := new(MockOrderStore)
	r := orderRouter(leadRepo, orderRepo, &fakeSender{})

	leadRepo.On("GetByID", 3).Return(&models.Lead{ID: 3, Stage: models.StageWon}, nil)
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(int64(11), nil)

	// lead_id arrives as text, the way the select widget submits it
	body := `{"lead_id":"3","courier":"DHL","tracking_number":"TRK-9","dispatch_date":"2025-04-01"}`
	w := postJSON(r, "/orders", body)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Order
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 11, created.ID)
	assert.Equal(t, models.StatusOrderReceived, created.Status)
}

func TestCreateOrderDuplicateIs409(t *testing.T) {
	leadRepo := new(MockLeadStore)
	orderRepo := new(MockOrderStore)
	r := orderRouter(leadRepo, orderRepo, &fakeSender{})

	leadRepo.On("GetByID", 3).Return(&models.Lead{ID: 3, Stage: models.StageWon}, nil)
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(int64(0), repositories.ErrDuplicateOrder)

	w := postJSON(r, "/orders", `{"lead_id":"3"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateOrderForNonWonLeadIs409(t *testing.T) {
	leadRepo := new(MockLeadStore)
	orderRepo := new(MockOrderStore)
	r := orderRouter(leadRepo, orderRepo, &fakeSender{})

	leadRepo.On("GetByID", 3).Return(&models.Lead{ID: 3, Stage: models.StageProposalSent}, nil)

	w := postJSON(r, "/orders", `{"lead_id":"3"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestEligibleLeadsEmptySetIsJSONArray(t *testing.T) {
	orderRepo := new(MockOrderStore)
	r := orderRouter(new(MockLeadStore), orderRepo, &fakeSender{})

	orderRepo.On("EligibleLeads").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders/eligible-leads", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestConfirmDispatchReportsReceipt(t *testing.T) {
	orderRepo := new(MockOrderStore)
	sender := &fakeSender{}
	r := orderRouter(new(MockLeadStore), orderRepo, sender)

	o := &models.OrderWithLead{LeadName: "Alice", Product: "Widget", Price: 10.5, Quantity: 3, LeadEmail: "a@x.com"}
	o.ID = 5
	o.Status = models.StatusReadyToDispatch

	orderRepo.On("GetByID", 5).Return(o, nil)
	orderRepo.On("UpdateStatus", 5, models.StatusDispatched).Return(nil)
	orderRepo.On("MarkEmailSent", 5).Return(true, nil)

	w := postJSON(r, "/orders/5/status", `{"status":"Dispatched"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sender.sent)

	w = postJSON(r, "/orders/5/status/confirm", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var res services.StatusChangeResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, services.OutcomeApplied, res.Outcome)
	assert.True(t, res.ReceiptSent)
	assert.Len(t, sender.sent, 1)
}
