package services

import "pipetrack/internal/models"

// Canonical value sets. Any value-to-value change is permitted — the
// pipeline is deliberately not a workflow DAG — so the policy only rejects
// values outside the canonical set. The side effects of entering or
// leaving Won live in LeadService.ChangeStage; the dispatch receipt
// trigger lives in OrderService.ChangeStatus.
var LeadStages = map[string]bool{
	models.StageNew:          true,
	models.StageContacted:    true,
	models.StageQualified:    true,
	models.StageProposalSent: true,
	models.StageWon:          true,
	models.StageLost:         true,
}

var OrderStatuses = map[string]bool{
	models.StatusOrderReceived:   true,
	models.StatusInDevelopment:   true,
	models.StatusReadyToDispatch: true,
	models.StatusDispatched:      true,
}

func IsValidStage(stage string) bool {
	return LeadStages[stage]
}

func IsValidOrderStatus(status string) bool {
	return OrderStatuses[status]
}
