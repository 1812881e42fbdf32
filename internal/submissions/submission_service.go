package submissions

import (
	"fmt"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/repository"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type SubmissionService struct {
	r  *repository.Repository
	sr SubmissionRepository
}

func NewService(r *repository.Repository, sr SubmissionRepository) *SubmissionService {
	return &SubmissionService{r: r, sr: sr}
}

// CreateSubmission writes the pending parent record and its counted items in
// one transaction, so a failed item insert can never leave an orphaned
// pending submission behind.
func (s *SubmissionService) CreateSubmission(user *models.User, req CreateSubmissionRequest) (string, error) {
	if user.VehicleID == nil {
		return "", fmt.Errorf("user %s has no assigned vehicle", user.ID)
	}

	var submissionID string

	err := repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var err error
		if submissionID, err = s.sr.InsertSubmissionRecord(tx, user.ID, *user.VehicleID, req.Notes); err != nil {
			return err
		}

		if err = s.sr.InsertSubmissionItems(tx, submissionID, req.Items); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		return "", err
	}

	s.r.NotifyChange("submissions")

	return submissionID, nil
}
