package auditlog

import (
	"net/http"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/roles"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/security"

	"github.com/gin-gonic/gin"
)

var auditedResources = map[string]bool{
	"user":       true,
	"vehicle":    true,
	"item":       true,
	"submission": true,
	"request":    true,
}

type AuditLogHandler struct {
	Repository *AuditLogRepository
}

func NewHandler(r *AuditLogRepository) *AuditLogHandler {
	return &AuditLogHandler{Repository: r}
}

func (h *AuditLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs/:resourceType/:id", security.Authorize(roles.Manager), h.GetResourceLog)
}

// GetResourceLog returns the mutation history of one resource, newest first.
func (h *AuditLogHandler) GetResourceLog(c *gin.Context) {
	resourceType := c.Param("resourceType")
	if !auditedResources[resourceType] {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown resource type: " + resourceType})
		return
	}

	logs, err := h.Repository.GetResourceLog(c.Param("id"), resourceType)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list audit logs", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, logs)
}
