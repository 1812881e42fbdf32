package models

// Vehicle is a field warehouse ("almoxarifado"), historically a van.
type Vehicle struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

func (v *Vehicle) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   v.ID,
		ResourceType: "vehicle",
	}
}
