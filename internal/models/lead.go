package models

import "time"

// Pipeline stages a lead moves through. An early data revision used
// "Closed" as the terminal stage; the 0001 migration folds it into Won.
const (
	StageNew          = "New"
	StageContacted    = "Contacted"
	StageQualified    = "Qualified"
	StageProposalSent = "Proposal Sent"
	StageWon          = "Won"
	StageLost         = "Lost"
)

type Lead struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Company       string     `json:"company"`
	ContactNumber string     `json:"contact_number"`
	Email         string     `json:"email"`
	Product       string     `json:"product"`
	Quantity      int        `json:"quantity"`
	Price         float64    `json:"price"`
	Stage         string     `json:"stage"`
	FollowUpDate  *time.Time `json:"follow_up_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
