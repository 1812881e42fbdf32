package vehicles

import (
	"fmt"
	"sort"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/repository"
	custom_error "github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/errors"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type VehicleRepository interface {
	GetVehicles() ([]models.Vehicle, error)
	PersistVehicle(name string) (*models.Vehicle, error)
	UpdateVehicle(id, name string) (*models.Vehicle, error)
	RemoveVehicle(id string) error
}

type vehicleRepositoryImpl struct {
	repository *repository.Repository
	collator   *collate.Collator
}

func NewRepository(r *repository.Repository) VehicleRepository {
	return &vehicleRepositoryImpl{
		repository: r,
		collator:   collate.New(language.BrazilianPortuguese),
	}
}

func (r *vehicleRepositoryImpl) GetVehicles() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	query := r.repository.GoquDBWrapper.Select("id", "name").From("vehicles")

	if err := query.Executor().ScanStructs(&vehicles); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	sort.SliceStable(vehicles, func(i, j int) bool {
		return r.collator.CompareString(vehicles[i].Name, vehicles[j].Name) < 0
	})

	return vehicles, nil
}

func (r *vehicleRepositoryImpl) PersistVehicle(name string) (*models.Vehicle, error) {
	vehicle := models.Vehicle{
		ID:   uuid.NewString(),
		Name: name,
	}

	query := r.repository.GoquDBWrapper.Insert("vehicles").
		Rows(goqu.Record{
			"id":   vehicle.ID,
			"name": vehicle.Name,
		})

	if _, err := query.Executor().Exec(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, custom_error.WrapDBError("Duplicate vehicle name", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert vehicle record: %w", err)
	}

	r.repository.NotifyChange("vehicles")

	return &vehicle, nil
}

func (r *vehicleRepositoryImpl) UpdateVehicle(id, name string) (*models.Vehicle, error) {
	query := r.repository.GoquDBWrapper.
		Update("vehicles").
		Set(goqu.Record{"name": name}).
		Where(goqu.Ex{"id": id}).
		Returning("id", "name")

	var vehicle models.Vehicle
	found, err := query.Executor().ScanStruct(&vehicle)
	if err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no vehicle found with id: %s", id)
	}

	r.repository.NotifyChange("vehicles")

	return &vehicle, nil
}

// RemoveVehicle deletes the row; the schema cascades the vehicle's inventory.
// Users referencing the vehicle keep a dangling-free NULL instead (SET NULL).
func (r *vehicleRepositoryImpl) RemoveVehicle(id string) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("vehicles").
		Where(goqu.Ex{"id": id}).
		Executor().Exec()

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("vehicle", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no vehicle found with id: %s", id)
	}

	r.repository.NotifyChange("vehicles")

	return nil
}
