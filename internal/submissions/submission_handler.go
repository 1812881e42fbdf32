package submissions

import (
	"net/http"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/auditlog"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/metadata"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/roles"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/security"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	Repository SubmissionRepository
	Service    *SubmissionService
	AuditLog   *auditlog.Auditlog
}

func NewHandler(r SubmissionRepository, s *SubmissionService, a *auditlog.Auditlog) *SubmissionHandler {
	return &SubmissionHandler{
		Repository: r,
		Service:    s,
		AuditLog:   a,
	}
}

func (h *SubmissionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/submissions", security.Authorize(roles.Manager), h.GetSubmissions)
	router.PATCH("/submissions/:id/status", security.Authorize(roles.Manager), h.UpdateSubmissionStatus)
	router.POST("/submissions", security.Authorize(roles.Technician), h.CreateSubmission)
}

func (h *SubmissionHandler) GetSubmissions(c *gin.Context) {
	submissions, err := h.Repository.GetSubmissions()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list submissions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, submissions)
}

func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	user, err := security.SessionUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authenticated user", "details": err.Error()})
		return
	}

	submissionID, err := h.Service.CreateSubmission(user, req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not create submission", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		user.ID,
		map[string]interface{}{
			"vehicle_id": user.VehicleID,
			"item_count": len(req.Items),
		},
		&models.Submission{ID: submissionID},
	)

	c.JSON(http.StatusCreated, gin.H{
		"id":     submissionID,
		"status": string(metadata.StatusPending),
	})
}

// UpdateSubmissionStatus is the manager's approve/reject decision. Only the
// status field changes; reported quantities are never written back into the
// vehicle inventory here.
func (h *SubmissionHandler) UpdateSubmissionStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	status, err := metadata.NewStatus(req.Status)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid status", "details": err.Error()})
		return
	}
	if !status.IsDecision() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Status must be approved or rejected"})
		return
	}

	submissionID := c.Param("id")
	if err := h.Repository.UpdateStatus(submissionID, status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update submission status", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(string(status), c.GetString("userID"), nil, &models.Submission{ID: submissionID})

	c.JSON(http.StatusOK, gin.H{
		"message":       "Submission status updated successfully",
		"submission_id": submissionID,
		"status":        string(status),
	})
}
