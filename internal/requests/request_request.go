package requests

type RequestItemRequest struct {
	ItemID            string `json:"item_id" binding:"required"`
	RequestedQuantity int    `json:"requested_quantity" binding:"required,gt=0"`
}

type CreateRequestRequest struct {
	Notes *string              `json:"notes"`
	Items []RequestItemRequest `json:"request_items" binding:"required,min=1,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
