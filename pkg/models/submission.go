package models

import "time"

// Submission is a technician's counted inventory for one vehicle, awaiting a
// manager decision. Items are written once with the parent and never edited.
type Submission struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	VehicleID   string           `json:"vehicle_id"`
	UserName    string           `json:"user_name"`
	VehicleName string           `json:"vehicle_name"`
	Status      string           `json:"status"`
	Notes       *string          `json:"notes,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	Items       []SubmissionItem `json:"submission_items"`
}

type SubmissionItem struct {
	ItemID           string `json:"item_id"`
	ItemName         string `json:"item_name"`
	PreviousQuantity int    `json:"previous_quantity"`
	ReportedQuantity int    `json:"reported_quantity"`
}

func (s *Submission) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   s.ID,
		ResourceType: "submission",
	}
}
