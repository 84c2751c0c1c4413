package models

import "time"

const (
	StatusOrderReceived   = "Order Received"
	StatusInDevelopment   = "In Development"
	StatusReadyToDispatch = "Ready to Dispatch"
	StatusDispatched      = "Dispatched"
)

type Order struct {
	ID             int        `json:"id"`
	LeadID         int        `json:"lead_id"`
	Status         string     `json:"status"`
	Courier        string     `json:"courier"`
	TrackingNumber string     `json:"tracking_number"`
	DispatchDate   *time.Time `json:"dispatch_date,omitempty"`
	EmailSent      bool       `json:"email_sent"`
	CreatedAt      time.Time  `json:"created_at"`
}

// OrderWithLead is the joined row the order list, dispatch trigger and
// receipt rendering all work from.
type OrderWithLead struct {
	Order
	LeadName  string  `json:"lead_name"`
	Product   string  `json:"product"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	LeadEmail string  `json:"lead_email"`
}

// EligibleLead is a won lead that has no order referencing it yet.
type EligibleLead struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
