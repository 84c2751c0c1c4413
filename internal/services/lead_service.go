package services

import (
	"errors"
	"fmt"
	"time"

	"pipetrack/internal/models"
)

var (
	ErrLeadNotFound = errors.New("lead not found")
	ErrInvalidStage = errors.New("invalid stage")
)

type LeadService struct {
	Repo      LeadStore
	OrderRepo OrderStore
}

func NewLeadService(leadRepo LeadStore, orderRepo OrderStore) *LeadService {
	return &LeadService{Repo: leadRepo, OrderRepo: orderRepo}
}

// Create inserts a new lead. The stage is always New on creation;
// quantity and price arrive coerced from free-text input and are clamped
// to non-negative here.
func (s *LeadService) Create(lead *models.Lead) error {
	lead.Stage = models.StageNew
	if lead.Quantity < 0 {
		lead.Quantity = 0
	}
	if lead.Price < 0 {
		lead.Price = 0
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	return s.Repo.Create(lead)
}

// Update edits a lead in place. The stage field is not touched here:
// stage changes go through ChangeStage so the cascade cannot be skipped.
func (s *LeadService) Update(lead *models.Lead) error {
	current, err := s.Repo.GetByID(lead.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrLeadNotFound
	}
	lead.Stage = current.Stage
	lead.CreatedAt = current.CreatedAt
	if lead.Quantity < 0 {
		lead.Quantity = 0
	}
	if lead.Price < 0 {
		lead.Price = 0
	}
	return s.Repo.Update(lead)
}

func (s *LeadService) GetByID(id int) (*models.Lead, error) {
	return s.Repo.GetByID(id)
}

func (s *LeadService) List(stage, search, sortBy, order string, limit, offset int) ([]models.Lead, error) {
	return s.Repo.FilterLeads(stage, search, sortBy, order, limit, offset)
}

// ChangeStage runs the stage transition saga: read the previous stage,
// persist the new one, then withdraw any dependent order when the lead
// leaves Won. The stage write is never rolled back when the withdrawal
// fails; the result says exactly how far the change got, and retrying the
// same transition re-attempts only the delete.
func (s *LeadService) ChangeStage(id int, to string) (*StageChangeResult, error) {
	if !IsValidStage(to) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, to)
	}
	lead, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	res := &StageChangeResult{
		LeadID:        id,
		PreviousStage: lead.Stage,
		Stage:         to,
	}

	if err := s.Repo.UpdateStage(id, to); err != nil {
		res.Outcome = OutcomeRejected
		res.Error = err.Error()
		return res, nil
	}
	res.Outcome = OutcomeApplied

	if to == models.StageWon {
		// Entering Won creates nothing; the lead only becomes eligible
		// for a manual order.
		res.NextAction = "create_order"
	}

	// The withdrawal runs for any non-Won target, not only when the
	// previous stage was Won: a lead that never won has no orders to
	// delete, and a retry after a partial failure (stage persisted,
	// delete failed) must still converge on zero dependent orders.
	if to != models.StageWon {
		n, err := s.OrderRepo.DeleteByLeadID(id)
		if err != nil {
			res.Outcome = OutcomePartiallyApplied
			res.Error = err.Error()
			return res, nil
		}
		res.OrdersWithdrawn = n
	}
	return res, nil
}
