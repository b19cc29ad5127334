package models

import (
	"time"
)

// Messcut request lifecycle statuses. Only accepted requests participate in
// reporting.
const (
	MesscutStatusPending  = "PENDING"
	MesscutStatusAccepted = "ACCEPT"
	MesscutStatusRejected = "REJECT"
)

// MesscutRequest defines a meal-opt-out request based on the
// 'messcut_requests' table. AdmissionNo is a soft foreign key to users; a
// request may outlive its owner, in which case report enrichment falls back
// to a placeholder.
type MesscutRequest struct {
	ID          string    `json:"id" db:"id"`
	AdmissionNo string    `json:"admissionNo" db:"admission_no"`
	Name        string    `json:"name" db:"name"`
	LeavingDate string    `json:"leavingDate" db:"leaving_date"`
	JoiningDate string    `json:"joiningDate,omitempty" db:"joining_date"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
