package models

// InventoryItem is one row of a vehicle's stock joined to its catalog item.
type InventoryItem struct {
	VehicleID string `json:"vehicle_id" db:"vehicle_id"`
	ItemID    string `json:"item_id" db:"item_id"`
	ItemName  string `json:"item_name" db:"item_name"`
	SKU       string `json:"sku" db:"sku"`
	Category  string `json:"category" db:"category"`
	Quantity  int    `json:"quantity" db:"quantity"`
}
