package vehicles

import (
	"net/http"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/auditlog"
	custom_error "github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/errors"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/roles"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/security"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	Repository VehicleRepository
	AuditLog   *auditlog.Auditlog
}

func NewVehicleHandler(r VehicleRepository, a *auditlog.Auditlog) *VehicleHandler {
	return &VehicleHandler{Repository: r, AuditLog: a}
}

func (h *VehicleHandler) RegisterRoutes(router *gin.RouterGroup) {
	manager := security.Authorize(roles.Manager)
	router.GET("/vehicles", manager, h.GetVehicles)
	router.POST("/vehicles", manager, h.CreateVehicle)
	router.PATCH("/vehicles/:id", manager, h.UpdateVehicle)
	router.DELETE("/vehicles/:id", manager, h.RemoveVehicle)
}

func (h *VehicleHandler) GetVehicles(c *gin.Context) {
	vehicles, err := h.Repository.GetVehicles()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list vehicles", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	vehicle, err := h.Repository.PersistVehicle(req.Name)
	if _, ok := err.(*custom_error.UniqueViolationError); ok {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Could not insert vehicle, name not unique", "details": err.Error()})
		return
	} else if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not insert vehicle", "details": err.Error()})
		return
	}

	go h.AuditLog.Log("create", c.GetString("userID"), map[string]interface{}{"name": vehicle.Name}, vehicle)

	c.JSON(http.StatusCreated, vehicle)
}

func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	vehicle, err := h.Repository.UpdateVehicle(c.Param("id"), req.Name)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not update vehicle", "details": err.Error()})
		return
	}

	go h.AuditLog.Log("update", c.GetString("userID"), map[string]interface{}{"name": vehicle.Name}, vehicle)

	c.JSON(http.StatusOK, vehicle)
}

// RemoveVehicle succeeds even when the vehicle still has inventory; the
// associated rows go with it (schema-level cascade, not enforced here).
func (h *VehicleHandler) RemoveVehicle(c *gin.Context) {
	err := h.Repository.RemoveVehicle(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not delete vehicle", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}
