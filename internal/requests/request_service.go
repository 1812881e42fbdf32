package requests

import (
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/repository"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type RequestService struct {
	r  *repository.Repository
	rr RequestRepository
}

func NewService(r *repository.Repository, rr RequestRepository) *RequestService {
	return &RequestService{r: r, rr: rr}
}

// CreateRequest writes the pending parent record and its requested items in
// one transaction.
func (s *RequestService) CreateRequest(user *models.User, req CreateRequestRequest) (string, error) {
	var requestID string

	err := repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var err error
		if requestID, err = s.rr.InsertRequestRecord(tx, user.ID, req.Notes); err != nil {
			return err
		}

		if err = s.rr.InsertRequestItems(tx, requestID, req.Items); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		return "", err
	}

	s.r.NotifyChange("requests")

	return requestID, nil
}
