package metadata

import (
	"fmt"
	"strings"
)

// Category of a catalog item. Values are kept in Portuguese, matching the
// historical data.
type Category string

const (
	CategoryEquipamento Category = "Equipamento"
	CategoryConsumo     Category = "Consumo"
	CategoryFerramenta  Category = "Ferramenta"
)

func NewCategory(value string) (Category, error) {
	normalized := strings.TrimSpace(value)
	category := Category(normalized)
	if !category.IsValid() {
		return "", fmt.Errorf("invalid category: %s", value)
	}
	return category, nil
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryEquipamento, CategoryConsumo, CategoryFerramenta:
		return true
	default:
		return false
	}
}
