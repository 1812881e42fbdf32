package requests

import (
	"fmt"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/repository"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/metadata"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type RequestRepository interface {
	GetRequests() ([]models.Request, error)
	InsertRequestRecord(tx *goqu.TxDatabase, userID string, notes *string) (string, error)
	InsertRequestItems(tx *goqu.TxDatabase, requestID string, items []RequestItemRequest) error
	UpdateStatus(id string, status metadata.Status) error
}

type requestRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) RequestRepository {
	return &requestRepositoryImpl{repository: r}
}

func (r *requestRepositoryImpl) GetRequests() ([]models.Request, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T("requests").As("r")).
		Select(
			"r.id",
			goqu.COALESCE(goqu.L("r.user_id::text"), "").As("user_id"),
			goqu.COALESCE(goqu.I("u.name"), "").As("user_name"),
			"r.status",
			"r.notes",
			"r.created_at",
		).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.Ex{"r.user_id": goqu.I("u.id")})).
		Order(goqu.I("r.created_at").Desc())

	rows, err := query.Executor().Query()
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	defer rows.Close()

	requests := []models.Request{}
	index := map[string]int{}
	for rows.Next() {
		var req models.Request
		if err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.UserName,
			&req.Status,
			&req.Notes,
			&req.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("unable to fetch data: %w", err)
		}
		req.Items = []models.RequestItem{}
		index[req.ID] = len(requests)
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(requests, index); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *requestRepositoryImpl) attachItems(requests []models.Request, index map[string]int) error {
	if len(requests) == 0 {
		return nil
	}

	ids := make([]string, 0, len(requests))
	for id := range index {
		ids = append(ids, id)
	}

	query := r.repository.GoquDBWrapper.
		From(goqu.T("request_items").As("ri")).
		Select(
			"ri.request_id",
			"ri.item_id",
			goqu.COALESCE(goqu.I("i.name"), "").As("item_name"),
			"ri.requested_quantity",
		).
		LeftJoin(goqu.T("items").As("i"), goqu.On(goqu.Ex{"ri.item_id": goqu.I("i.id")})).
		Where(goqu.Ex{"ri.request_id": ids})

	rows, err := query.Executor().Query()
	if err != nil {
		return fmt.Errorf("error executing SQL statement: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var requestID string
		var item models.RequestItem
		if err := rows.Scan(
			&requestID,
			&item.ItemID,
			&item.ItemName,
			&item.RequestedQuantity,
		); err != nil {
			return fmt.Errorf("unable to fetch data: %w", err)
		}
		if i, ok := index[requestID]; ok {
			requests[i].Items = append(requests[i].Items, item)
		}
	}

	return rows.Err()
}

func (r *requestRepositoryImpl) InsertRequestRecord(tx *goqu.TxDatabase, userID string, notes *string) (string, error) {
	id := uuid.NewString()

	query := tx.Insert("requests").
		Rows(goqu.Record{
			"id":      id,
			"user_id": userID,
			"status":  string(metadata.StatusPending),
			"notes":   notes,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return "", fmt.Errorf("failed to insert request: %w", err)
	}

	return id, nil
}

func (r *requestRepositoryImpl) InsertRequestItems(tx *goqu.TxDatabase, requestID string, items []RequestItemRequest) error {
	records := make([]goqu.Record, 0, len(items))
	for _, item := range items {
		records = append(records, goqu.Record{
			"request_id":         requestID,
			"item_id":            item.ItemID,
			"requested_quantity": item.RequestedQuantity,
		})
	}

	query := tx.Insert("request_items").Rows(records)
	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert request items: %w", err)
	}

	return nil
}

func (r *requestRepositoryImpl) UpdateStatus(id string, status metadata.Status) error {
	result, err := r.repository.GoquDBWrapper.
		Update("requests").
		Set(goqu.Record{"status": string(status)}).
		Where(goqu.Ex{"id": id}).
		Executor().Exec()

	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no request found with id: %s", id)
	}

	r.repository.NotifyChange("requests")

	return nil
}
