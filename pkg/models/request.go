package models

import "time"

// Request is a technician's ask for additional material from the catalog.
type Request struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	UserName  string        `json:"user_name"`
	Status    string        `json:"status"`
	Notes     *string       `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Items     []RequestItem `json:"request_items"`
}

type RequestItem struct {
	ItemID            string `json:"item_id"`
	ItemName          string `json:"item_name"`
	RequestedQuantity int    `json:"requested_quantity"`
}

func (r *Request) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   r.ID,
		ResourceType: "request",
	}
}
