package services

import "pipetrack/internal/models"

// LeadStore is what the services need from the lead repository.
type LeadStore interface {
	Create(lead *models.Lead) error
	Update(lead *models.Lead) error
	UpdateStage(id int, stage string) error
	GetByID(id int) (*models.Lead, error)
	FilterLeads(stage, search, sortBy, order string, limit, offset int) ([]models.Lead, error)
	CountLeads() (int, error)
	CountByStage(stage string) (int, error)
}

// OrderStore is what the services need from the order repository.
type OrderStore interface {
	Create(order *models.Order) (int64, error)
	GetByID(id int) (*models.OrderWithLead, error)
	ListWithLead(status, search, sortBy, order string, limit, offset int) ([]models.OrderWithLead, error)
	UpdateStatus(id int, status string) error
	DeleteByLeadID(leadID int) (int64, error)
	EligibleLeads() ([]models.EligibleLead, error)
	MarkEmailSent(id int) (bool, error)
	CountOrders() (int, error)
	CountByStatus(status string) (int, error)
}
