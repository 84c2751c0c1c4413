package services

import "pipetrack/internal/models"

type ReportService struct {
	LeadRepo  LeadStore
	OrderRepo OrderStore
}

func NewReportService(leadRepo LeadStore, orderRepo OrderStore) *ReportService {
	return &ReportService{LeadRepo: leadRepo, OrderRepo: orderRepo}
}

type Summary struct {
	Leads struct {
		Total int `json:"total"`
		Won   int `json:"won"`
	} `json:"leads"`
	Orders struct {
		Total      int `json:"total"`
		Dispatched int `json:"dispatched"`
	} `json:"orders"`
}

// GetSummary returns the dashboard counters.
func (s *ReportService) GetSummary() (*Summary, error) {
	var sum Summary
	var err error

	if sum.Leads.Total, err = s.LeadRepo.CountLeads(); err != nil {
		return nil, err
	}
	if sum.Leads.Won, err = s.LeadRepo.CountByStage(models.StageWon); err != nil {
		return nil, err
	}
	if sum.Orders.Total, err = s.OrderRepo.CountOrders(); err != nil {
		return nil, err
	}
	if sum.Orders.Dispatched, err = s.OrderRepo.CountByStatus(models.StatusDispatched); err != nil {
		return nil, err
	}
	return &sum, nil
}
