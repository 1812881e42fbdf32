package catalog

type CreateItemRequest struct {
	Name     string `json:"name" binding:"required"`
	SKU      string `json:"sku" binding:"required"`
	Category string `json:"category" binding:"required"`
}

type UpdateItemRequest struct {
	Name     *string `json:"name"`
	SKU      *string `json:"sku"`
	Category *string `json:"category"`
}
