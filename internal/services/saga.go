package services

// Outcome classifies a multi-step change. The store has no transaction
// spanning the primary write and its dependent action, so a change can
// land partially: the primary write succeeded but the side effect did
// not. The caller gets the full picture and decides what to surface.
type Outcome string

const (
	OutcomeApplied          Outcome = "applied"
	OutcomePartiallyApplied Outcome = "partially_applied"
	OutcomeRejected         Outcome = "rejected"
)

// StageChangeResult reports what happened when a lead's stage was changed.
type StageChangeResult struct {
	LeadID          int     `json:"lead_id"`
	PreviousStage   string  `json:"previous_stage"`
	Stage           string  `json:"stage"`
	Outcome         Outcome `json:"outcome"`
	OrdersWithdrawn int64   `json:"orders_withdrawn"`
	// NextAction is set to "create_order" when the lead enters Won: no
	// order is created automatically, the lead only becomes eligible.
	NextAction string `json:"next_action,omitempty"`
	Error      string `json:"error,omitempty"`
}

// StatusChangeResult reports what happened when an order's status was
// changed, including the outcome of the receipt dispatch trigger.
type StatusChangeResult struct {
	OrderID        int     `json:"order_id"`
	PreviousStatus string  `json:"previous_status"`
	Status         string  `json:"status"`
	Outcome        Outcome `json:"outcome"`
	ReceiptSent    bool    `json:"receipt_sent"`
	Error          string  `json:"error,omitempty"`
}
