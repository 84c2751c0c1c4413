package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pipetrack/internal/middleware"
	"pipetrack/internal/services"
)

// ReceiptHandler is the one-route mail relay. No authentication, no
// idempotency key: every call sends another email.
type ReceiptHandler struct {
	Sender services.ReceiptSender
}

func NewReceiptHandler(sender services.ReceiptSender) *ReceiptHandler {
	return &ReceiptHandler{Sender: sender}
}

// SendReceiptRequest fields are free-form text or numbers.
type SendReceiptRequest struct {
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Product        string    `json:"product"`
	Price          textValue `json:"price"`
	Quantity       textValue `json:"quantity"`
	TrackingNumber string    `json:"tracking_number"`
}

// SendReceipt implements POST /send-receipt.
func (h *ReceiptHandler) SendReceipt(c *gin.Context) {
	var req SendReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data := services.ReceiptData{
		Name:           req.Name,
		Email:          req.Email,
		Product:        req.Product,
		Price:          req.Price.Float(),
		Quantity:       req.Quantity.Float(),
		TrackingNumber: req.TrackingNumber,
	}

	if err := h.Sender.SendReceipt(data); err != nil {
		log.Printf("Email failed: %v", err)
		middleware.RecordReceiptEmail("failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}
	middleware.RecordReceiptEmail("sent")
	c.JSON(http.StatusOK, gin.H{"message": "Email sent"})
}
