package catalog

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

type ItemRepository interface {
	GetItems() ([]models.Item, error)
	PersistItem(req CreateItemRequest) (*models.Item, error)
	UpdateItem(id string, req UpdateItemRequest) (*models.Item, error)
	DeleteItem(id string) error
}

type itemRepositoryImpl struct {
	repository *repository.Repository
	collator   *collate.Collator
}

func NewRepository(r *repository.Repository) ItemRepository {
	return &itemRepositoryImpl{
		repository: r,
		collator:   collate.New(language.BrazilianPortuguese),
	}
}

// GetItems lists the whole catalog ordered by name ascending. Ordering is
// done here with a pt-BR collator, not in SQL, so accented names sort the way
// the users expect regardless of the database locale.
func (r *itemRepositoryImpl) GetItems() ([]models.Item, error) {
	var items []models.Item
	query := r.repository.GoquDBWrapper.
		Select("id", "name", "sku", "category", "created_at").
		From("items")

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return r.collator.CompareString(items[i].Name, items[j].Name) < 0
	})

	return items, nil
}

func (r *itemRepositoryImpl) PersistItem(req CreateItemRequest) (*models.Item, error) {
	item := models.Item{
		ID:       uuid.NewString(),
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
	}

	query := r.repository.GoquDBWrapper.Insert("items").
		Rows(goqu.Record{
			"id":       item.ID,
			"name":     item.Name,
			"sku":      item.SKU,
			"category": item.Category,
		}).
		Returning("created_at")

	if _, err := query.Executor().ScanVal(&item.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, custom_error.WrapDBError("Duplicate SKU for catalog item", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert item record: %w", err)
	}

	r.repository.NotifyChange("items")

	return &item, nil
}

func (r *itemRepositoryImpl) UpdateItem(id string, req UpdateItemRequest) (*models.Item, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	query := r.repository.GoquDBWrapper.
		Update("items").
		Set(updates).
		Where(goqu.Ex{"id": id}).
		Returning("id", "name", "sku", "category", "created_at")

	var item models.Item
	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no item found with id: %s", id)
	}

	r.repository.NotifyChange("items")

	return &item, nil
}

func (r *itemRepositoryImpl) DeleteItem(id string) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("items").
		Where(goqu.Ex{"id": id}).
		Executor().Exec()

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("catalog item", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no item found with id: %s", id)
	}

	r.repository.NotifyChange("items")

	return nil
}
