package requests

import (
	"net/http"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/auditlog"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/metadata"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/roles"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/security"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	Repository RequestRepository
	Service    *RequestService
	AuditLog   *auditlog.Auditlog
}

func NewHandler(r RequestRepository, s *RequestService, a *auditlog.Auditlog) *RequestHandler {
	return &RequestHandler{
		Repository: r,
		Service:    s,
		AuditLog:   a,
	}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/requests", security.Authorize(roles.Manager), h.GetRequests)
	router.PATCH("/requests/:id/status", security.Authorize(roles.Manager), h.UpdateRequestStatus)
	router.POST("/requests", security.Authorize(roles.Technician), h.CreateRequest)
}

func (h *RequestHandler) GetRequests(c *gin.Context) {
	requests, err := h.Repository.GetRequests()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list requests", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Select at least one item to request", "details": err.Error()})
		return
	}

	user, err := security.SessionUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authenticated user", "details": err.Error()})
		return
	}

	requestID, err := h.Service.CreateRequest(user, req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not create request", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		user.ID,
		map[string]interface{}{"item_count": len(req.Items)},
		&models.Request{ID: requestID},
	)

	c.JSON(http.StatusCreated, gin.H{
		"id":     requestID,
		"status": string(metadata.StatusPending),
	})
}

func (h *RequestHandler) UpdateRequestStatus(c *gin.Context) {
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

	requestID := c.Param("id")
	if err := h.Repository.UpdateStatus(requestID, status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update request status", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(string(status), c.GetString("userID"), nil, &models.Request{ID: requestID})

	c.JSON(http.StatusOK, gin.H{
		"message":    "Request status updated successfully",
		"request_id": requestID,
		"status":     string(status),
	})
}
