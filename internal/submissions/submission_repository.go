package submissions

import (
	"fmt"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/repository"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/metadata"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type SubmissionRepository interface {
	GetSubmissions() ([]models.Submission, error)
	InsertSubmissionRecord(tx *goqu.TxDatabase, userID, vehicleID string, notes *string) (string, error)
	InsertSubmissionItems(tx *goqu.TxDatabase, submissionID string, items []SubmissionItemRequest) error
	UpdateStatus(id string, status metadata.Status) error
}

type submissionRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) SubmissionRepository {
	return &submissionRepositoryImpl{repository: r}
}

// GetSubmissions lists every submission newest first, joined to the
// submitting user and vehicle, with its items attached.
func (r *submissionRepositoryImpl) GetSubmissions() ([]models.Submission, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T("submissions").As("s")).
		Select(
			"s.id",
			goqu.COALESCE(goqu.L("s.user_id::text"), "").As("user_id"),
			goqu.COALESCE(goqu.L("s.vehicle_id::text"), "").As("vehicle_id"),
			goqu.COALESCE(goqu.I("u.name"), "").As("user_name"),
			goqu.COALESCE(goqu.I("v.name"), "").As("vehicle_name"),
			"s.status",
			"s.notes",
			"s.created_at",
		).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.Ex{"s.user_id": goqu.I("u.id")})).
		LeftJoin(goqu.T("vehicles").As("v"), goqu.On(goqu.Ex{"s.vehicle_id": goqu.I("v.id")})).
		Order(goqu.I("s.created_at").Desc())

	rows, err := query.Executor().Query()
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	defer rows.Close()

	submissions := []models.Submission{}
	index := map[string]int{}
	for rows.Next() {
		var s models.Submission
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.VehicleID,
			&s.UserName,
			&s.VehicleName,
			&s.Status,
			&s.Notes,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("unable to fetch data: %w", err)
		}
		s.Items = []models.SubmissionItem{}
		index[s.ID] = len(submissions)
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(submissions, index); err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepositoryImpl) attachItems(submissions []models.Submission, index map[string]int) error {
	if len(submissions) == 0 {
		return nil
	}

	ids := make([]string, 0, len(submissions))
	for id := range index {
		ids = append(ids, id)
	}

	query := r.repository.GoquDBWrapper.
		From(goqu.T("submission_items").As("si")).
		Select(
			"si.submission_id",
			goqu.COALESCE(goqu.L("si.item_id::text"), "").As("item_id"),
			"si.item_name",
			"si.previous_quantity",
			"si.reported_quantity",
		).
		Where(goqu.Ex{"si.submission_id": ids})

	rows, err := query.Executor().Query()
	if err != nil {
		return fmt.Errorf("error executing SQL statement: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var submissionID string
		var item models.SubmissionItem
		if err := rows.Scan(
			&submissionID,
			&item.ItemID,
			&item.ItemName,
			&item.PreviousQuantity,
			&item.ReportedQuantity,
		); err != nil {
			return fmt.Errorf("unable to fetch data: %w", err)
		}
		if i, ok := index[submissionID]; ok {
			submissions[i].Items = append(submissions[i].Items, item)
		}
	}

	return rows.Err()
}

func (r *submissionRepositoryImpl) InsertSubmissionRecord(tx *goqu.TxDatabase, userID, vehicleID string, notes *string) (string, error) {
	id := uuid.NewString()

	query := tx.Insert("submissions").
		Rows(goqu.Record{
			"id":         id,
			"user_id":    userID,
			"vehicle_id": vehicleID,
			"status":     string(metadata.StatusPending),
			"notes":      notes,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return "", fmt.Errorf("failed to insert submission: %w", err)
	}

	return id, nil
}

// InsertSubmissionItems snapshots the item name at submission time; the
// record stays readable even if the catalog item is renamed later.
func (r *submissionRepositoryImpl) InsertSubmissionItems(tx *goqu.TxDatabase, submissionID string, items []SubmissionItemRequest) error {
	records := make([]goqu.Record, 0, len(items))
	for _, item := range items {
		records = append(records, goqu.Record{
			"submission_id":     submissionID,
			"item_id":           item.ItemID,
			"item_name":         goqu.L("(SELECT name FROM items WHERE id = ?)", item.ItemID),
			"previous_quantity": item.PreviousQuantity,
			"reported_quantity": item.ReportedQuantity,
		})
	}

	query := tx.Insert("submission_items").Rows(records)
	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert submission items: %w", err)
	}

	return nil
}

func (r *submissionRepositoryImpl) UpdateStatus(id string, status metadata.Status) error {
	result, err := r.repository.GoquDBWrapper.
		Update("submissions").
		Set(goqu.Record{"status": string(status)}).
		Where(goqu.Ex{"id": id}).
		Executor().Exec()

	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no submission found with id: %s", id)
	}

	r.repository.NotifyChange("submissions")

	return nil
}
