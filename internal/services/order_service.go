package services

import (
	"errors"
	"fmt"
	"time"

	"pipetrack/internal/models"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrLeadNotEligible = errors.New("lead is not in stage Won")
)

type OrderService struct {
	Repo     OrderStore
	LeadRepo LeadStore
	Sender   ReceiptSender
}

func NewOrderService(orderRepo OrderStore, leadRepo LeadStore, sender ReceiptSender) *OrderService {
	return &OrderService{Repo: orderRepo, LeadRepo: leadRepo, Sender: sender}
}

// Create inserts an order for a won lead. The stage check here is the
// same racy read the eligibility filter does; the unique constraint on
// orders.lead_id is the backstop that actually holds the one-order-per-
// lead invariant under concurrent creation.
func (s *OrderService) Create(order *models.Order) error {
	lead, err := s.LeadRepo.GetByID(order.LeadID)
	if err != nil {
		return err
	}
	if lead == nil {
		return ErrLeadNotFound
	}
	if lead.Stage != models.StageWon {
		return ErrLeadNotEligible
	}

	if order.Status == "" {
		order.Status = models.StatusOrderReceived
	}
	if !IsValidOrderStatus(order.Status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, order.Status)
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	order.EmailSent = false

	id, err := s.Repo.Create(order)
	if err != nil {
		return err
	}
	order.ID = int(id)
	return nil
}

func (s *OrderService) GetByID(id int) (*models.OrderWithLead, error) {
	return s.Repo.GetByID(id)
}

func (s *OrderService) List(status, search, sortBy, order string, limit, offset int) ([]models.OrderWithLead, error) {
	return s.Repo.ListWithLead(status, search, sortBy, order, limit, offset)
}

// EligibleLeads returns won leads with no order yet (§ the set the order
// form offers). Computed in the store per request, never cached.
func (s *OrderService) EligibleLeads() ([]models.EligibleLead, error) {
	return s.Repo.EligibleLeads()
}

// ChangeStatus runs the status change saga. Confirming Dispatched on an
// order whose receipt flag is unset sends the receipt; the flag is
// persisted only after the relay reported success, so a failed send can
// be retried by confirming again. An order already flagged never reaches
// the sender.
func (s *OrderService) ChangeStatus(id int, to string) (*StatusChangeResult, error) {
	if !IsValidOrderStatus(to) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	order, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	res := &StatusChangeResult{
		OrderID:        id,
		PreviousStatus: order.Status,
		Status:         to,
	}

	if err := s.Repo.UpdateStatus(id, to); err != nil {
		res.Outcome = OutcomeRejected
		res.Error = err.Error()
		return res, nil
	}
	res.Outcome = OutcomeApplied

	if to != models.StatusDispatched || order.EmailSent {
		return res, nil
	}

	receipt := ReceiptData{
		Name:           order.LeadName,
		Email:          order.LeadEmail,
		Product:        order.Product,
		Price:          order.Price,
		Quantity:       float64(order.Quantity),
		TrackingNumber: order.TrackingNumber,
	}
	if err := s.Sender.SendReceipt(receipt); err != nil {
		// Status stays Dispatched, flag stays unset: the next confirm
		// re-attempts the send.
		res.Outcome = OutcomePartiallyApplied
		res.Error = err.Error()
		return res, nil
	}
	res.ReceiptSent = true

	if _, err := s.Repo.MarkEmailSent(id); err != nil {
		res.Outcome = OutcomePartiallyApplied
		res.Error = err.Error()
	}
	return res, nil
}
