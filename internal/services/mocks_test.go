package services

import (
	"github.com/stretchr/testify/mock"

	"pipetrack/internal/models"
)

// MockLeadStore
type MockLeadStore struct {
	mock.Mock
}

func (m *MockLeadStore) Create(lead *models.Lead) error {
	args := m.Called(lead)
	return args.Error(0)
}

func (m *MockLeadStore) Update(lead *models.Lead) error {
	args := m.Called(lead)
	return args.Error(0)
}

func (m *MockLeadStore) UpdateStage(id int, stage string) error {
	args := m.Called(id, stage)
	return args.Error(0)
}

func (m *MockLeadStore) GetByID(id int) (*models.Lead, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadStore) FilterLeads(stage, search, sortBy, order string, limit, offset int) ([]models.Lead, error) {
	args := m.Called(stage, search, sortBy, order, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lead), args.Error(1)
}

func (m *MockLeadStore) CountLeads() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockLeadStore) CountByStage(stage string) (int, error) {
	args := m.Called(stage)
	return args.Int(0), args.Error(1)
}

// MockOrderStore
type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) Create(order *models.Order) (int64, error) {
	args := m.Called(order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderStore) GetByID(id int) (*models.OrderWithLead, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderWithLead), args.Error(1)
}

func (m *MockOrderStore) ListWithLead(status, search, sortBy, order string, limit, offset int) ([]models.OrderWithLead, error) {
	args := m.Called(status, search, sortBy, order, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderWithLead), args.Error(1)
}

func (m *MockOrderStore) UpdateStatus(id int, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockOrderStore) DeleteByLeadID(leadID int) (int64, error) {
	args := m.Called(leadID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderStore) EligibleLeads() ([]models.EligibleLead, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EligibleLead), args.Error(1)
}

func (m *MockOrderStore) MarkEmailSent(id int) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderStore) CountOrders() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockOrderStore) CountByStatus(status string) (int, error) {
	args := m.Called(status)
	return args.Int(0), args.Error(1)
}

// MockReceiptSender
type MockReceiptSender struct {
	mock.Mock
}

func (m *MockReceiptSender) SendReceipt(data ReceiptData) error {
	args := m.Called(data)
	return args.Error(0)
}
