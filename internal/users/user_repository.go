package users

import (
	"fmt"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/repository"
	custom_error "github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/errors"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type UserRepository interface {
	PersistUser(req models.CreateUserRequest, hashedPassword []byte) (*models.User, error)
	GetUser(id string) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(id string, changes *models.UserChanges) error
	DeleteUser(id string) error
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) PersistUser(req models.CreateUserRequest, hashedPassword []byte) (*models.User, error) {
	user := models.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Role:      req.Role,
		VehicleID: req.VehicleID,
	}

	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"id":            user.ID,
			"name":          user.Name,
			"password_hash": string(hashedPassword),
			"role":          user.Role,
			"vehicle_id":    user.VehicleID,
		})

	if _, err := query.Executor().Exec(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, custom_error.WrapDBError("Duplicate user name", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	r.repository.NotifyChange("users")

	return &user, nil
}

func (r *userRepositoryImpl) GetUsers() ([]models.User, error) {
	var users []models.User
	query := r.repository.GoquDBWrapper.
		Select("id", "name", "role", "vehicle_id").
		From("users")

	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return users, nil
}

func (r *userRepositoryImpl) GetUser(id string) (*models.User, error) {
	var user models.User
	query := r.repository.GoquDBWrapper.
		Select("id", "name", "password_hash", "role", "vehicle_id").
		From("users").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no user found with id: %s", id)
	}

	return &user, nil
}

func (r *userRepositoryImpl) UpdateUser(id string, changes *models.UserChanges) error {
	updates := make(map[string]interface{})

	if changes.Name != nil {
		updates["name"] = *changes.Name
	}
	if changes.PasswordHash != nil {
		updates["password_hash"] = *changes.PasswordHash
	}
	if changes.Role != nil {
		updates["role"] = *changes.Role
	}
	if changes.VehicleID != nil {
		updates["vehicle_id"] = *changes.VehicleID
	}
	if changes.ClearVehicle {
		updates["vehicle_id"] = nil
	}

	query := r.repository.GoquDBWrapper.
		Update("users").
		Set(updates).
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	r.repository.NotifyChange("users")

	return nil
}

// DeleteUser removes only the user row. Submissions and requests the user
// created stay behind, still carrying the user id.
func (r *userRepositoryImpl) DeleteUser(id string) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("users").
		Where(goqu.Ex{"id": id}).
		Executor().Exec()

	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no user found with id: %s", id)
	}

	r.repository.NotifyChange("users")

	return nil
}
