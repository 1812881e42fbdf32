package inventory

import (
	"fmt"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/repository"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type InventoryRepository interface {
	GetVehicleInventory(vehicleID string) ([]models.InventoryItem, error)
	SetQuantity(vehicleID, itemID string, quantity int) error
}

type inventoryRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) InventoryRepository {
	return &inventoryRepositoryImpl{repository: r}
}

// GetVehicleInventory returns the vehicle's stock joined to the catalog.
func (r *inventoryRepositoryImpl) GetVehicleInventory(vehicleID string) ([]models.InventoryItem, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T("inventory").As("inv")).
		Select(
			"inv.vehicle_id",
			"inv.item_id",
			goqu.I("i.name").As("item_name"),
			"i.sku",
			"i.category",
			"inv.quantity",
		).
		LeftJoin(
			goqu.T("items").As("i"),
			goqu.On(goqu.Ex{"inv.item_id": goqu.I("i.id")}),
		).
		Where(goqu.Ex{"inv.vehicle_id": vehicleID}).
		Order(goqu.I("i.name").Asc())

	rows, err := query.Executor().Query()
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	defer rows.Close()

	inventory := []models.InventoryItem{}
	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(
			&item.VehicleID,
			&item.ItemID,
			&item.ItemName,
			&item.SKU,
			&item.Category,
			&item.Quantity,
		); err != nil {
			return nil, fmt.Errorf("unable to fetch data: %w", err)
		}
		inventory = append(inventory, item)
	}

	return inventory, rows.Err()
}

// SetQuantity upserts one stock row for a vehicle.
func (r *inventoryRepositoryImpl) SetQuantity(vehicleID, itemID string, quantity int) error {
	query := r.repository.GoquDBWrapper.Insert("inventory").
		Rows(goqu.Record{
			"vehicle_id": vehicleID,
			"item_id":    itemID,
			"quantity":   quantity,
		}).
		OnConflict(goqu.DoUpdate("vehicle_id, item_id", goqu.Record{"quantity": quantity}))

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to set inventory quantity: %w", err)
	}

	r.repository.NotifyChange("inventory")

	return nil
}
