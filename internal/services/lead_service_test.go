package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pipetrack/internal/models"
)

func TestCreateForcesStageNewAndClampsInput(t *testing.T) {
	leadRepo := new(MockLeadStore)
	orderRepo := new(MockOrderStore)
	svc := NewLeadService(leadRepo, orderRepo)

	leadRepo.On("Create", mock.AnythingOfType("*models.Lead")).Return(nil)

	lead := &models.Lead{
		Name:     "Alice",
		Stage:    models.StageWon, // ignored: creation always starts at New
		Quantity: -3,
		Price:    -10,
	}
	err := svc.Create(lead)

	assert.NoError(t, err)
	assert.Equal(t, models.StageNew, lead.Stage)
	assert.Equal(t, 0, lead.Quantity)
	assert.Equal(t, float64(0), lead.Price)
	assert.False(t, lead.CreatedAt.IsZero())
	leadRepo.AssertExpectations(t)
}

func TestUpdateDoesNotTouchStage(t *testing.T) {
	leadRepo := new(MockLeadStore)
	orderRepo := new(MockOrderStore)
	svc := NewLeadService(leadRepo, orderRepo)

	leadRepo.On("GetByID", 7).Return(&models.Lead{ID: 7, Stage: models.StageQualified}, nil)
	leadRepo.On("Update", mock.AnythingOfType("*models.Lead")).Return(nil)

	lead := &models.Lead{ID: 7, Name: "Alice", Stage: models.StageWon}
	err := svc.Update(lead)

	assert.NoError(t, err)
	assert.Equal(t, models.StageQualified, lead.Stage)
}

func TestChangeStageRejectsUnknownStage(t *testing.T) {
	svc := NewLeadService(new(MockLeadStore), new(MockOrderStore))

	res, err := svc.ChangeStage(1, "Closed")

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestChangeStageLeadNotFound(t *testing.T) {
	leadRepo := new(MockLeadStore)
	svc := NewLeadService(leadRepo, new(MockOrderStore))

	leadRepo.On("GetByID", 42).Return(nil, nil)

	res, err := svc.ChangeStage(42, models.StageWon)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestChangeStageEnteringWonCreatesNothing(t *testing.T) {
	leadRepo := new(MockLeadStore)
	orderRepo := new(MockOrderStore)
	svc := NewLeadService(leadRepo, orderRepo)

	leadRepo.On("GetByID", 1).Return(&models.Lead{ID: 1, Stage: models.StageQualified}, nil)
	leadRepo.On("UpdateStage", 1, models.StageWon).Return(nil)

	res, err := svc.ChangeStage(1, models.StageWon)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, "create_order", res.NextAction)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
	orderRepo.AssertNotCalled(t, "DeleteByLeadID", mock.Anything)
}

func TestChangeStageLeavingWonWithdrawsOrder(t *testing.T) {
	leadRepo := new(MockLeadStore)
	orderRepo := new(MockOrderStore)
	svc := NewLeadService(leadRepo, orderRepo)

	leadRepo.On("GetByID", 1).Return(&models.Lead{ID: 1, Stage: models.StageWon}, nil)
	leadRepo.On("UpdateStage", 1, models.StageLost).Return(nil)
	orderRepo.On("DeleteByLeadID", 1).Return(int64(1), nil)

	res, err := svc.ChangeStage(1, models.StageLost)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, models.StageWon, res.PreviousStage)
	assert.Equal(t, int64(1), res.OrdersWithdrawn)
	orderRepo.AssertExpectations(t)
}

func TestChangeStagePersistFailureIsRejected(t *testing.T) {
	leadRepo := new(MockLeadStore)
	orderRepo := new(MockOrderStore)
	svc := NewLeadService(leadRepo, orderRepo)

	leadRepo.On("GetByID", 1).Return(&models.Lead{ID: 1, Stage: models.StageWon}, nil)
	leadRepo.On("UpdateStage", 1, models.StageLost).Return(errors.New("connection reset"))

	res, err := svc.ChangeStage(1, models.StageLost)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Contains(t, res.Error, "connection reset")
	orderRepo.AssertNotCalled(t, "DeleteByLeadID", mock.Anything)
}

func TestChangeStageCascadeFailureIsPartiallyApplied(t *testing.T) {
	leadRepo := new(MockLeadStore)
	orderRepo := new(MockOrderStore)
	svc := NewLeadService(leadRepo, orderRepo)

	leadRepo.On("GetByID", 1).Return(&models.Lead{ID: 1, Stage: models.StageWon}, nil)
	leadRepo.On("UpdateStage", 1, models.StageContacted).Return(nil)
	orderRepo.On("DeleteByLeadID", 1).Return(int64(0), errors.New("store unreachable"))

	res, err := svc.ChangeStage(1, models.StageContacted)

	assert.NoError(t, err)
	assert.Equal(t, OutcomePartiallyApplied, res.Outcome)
	assert.Contains(t, res.Error, "store unreachable")
}

// After a partial failure the stage is already the new value; retrying
// the same transition must still delete the orphaned order.
func TestChangeStageRetryAfterPartialFailureConverges(t *testing.T) {
	leadRepo := new(MockLeadStore)
	orderRepo := new(MockOrderStore)
	svc := NewLeadService(leadRepo, orderRepo)

	leadRepo.On("GetByID", 1).Return(&models.Lead{ID: 1, Stage: models.StageLost}, nil)
	leadRepo.On("UpdateStage", 1, models.StageLost).Return(nil)
	orderRepo.On("DeleteByLeadID", 1).Return(int64(1), nil)

	res, err := svc.ChangeStage(1, models.StageLost)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, int64(1), res.OrdersWithdrawn)
}
