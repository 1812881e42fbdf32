package submissions

type SubmissionItemRequest struct {
	ItemID           string `json:"item_id" binding:"required"`
	ReportedQuantity int    `json:"reported_quantity"`
	PreviousQuantity int    `json:"previous_quantity"`
}

type CreateSubmissionRequest struct {
	Notes *string                 `json:"notes"`
	Items []SubmissionItemRequest `json:"submission_items" binding:"required,min=1,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
