package models

type CreateUserRequest struct {
	Name      string  `json:"name" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	Role      string  `json:"role" binding:"required"`
	VehicleID *string `json:"vehicle_id"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Password  *string `json:"password"`
	Role      *string `json:"role"`
	VehicleID *string `json:"vehicle_id"`
}

type UserChanges struct {
	Name         *string
	PasswordHash *string
	Role         *string
	VehicleID    *string
	ClearVehicle bool
}

func (c *UserChanges) HasChanges() bool {
	return c.Name != nil || c.PasswordHash != nil || c.Role != nil || c.VehicleID != nil || c.ClearVehicle
}
