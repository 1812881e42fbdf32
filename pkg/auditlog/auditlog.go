package auditlog

import (
	"log"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"
)

type Recorder interface {
	PersistLog(auditlog models.AuditLog, data interface{}) error
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

type Auditlog struct {
	r Recorder
}

func NewAuditLog(recorder Recorder) *Auditlog {
	return &Auditlog{r: recorder}
}

// Log records one action against a resource, attributed to the acting user.
// Failures are logged and swallowed; auditing must never fail the mutation it
// describes.
func (a *Auditlog) Log(action, actorID string, data interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action
	if actorID != "" {
		auditLog.UserID = &actorID
	}

	if err := a.r.PersistLog(auditLog, data); err != nil {
		log.Println("Unable to create audit log entry for id", auditLog.ResourceID)
		return
	}
}
