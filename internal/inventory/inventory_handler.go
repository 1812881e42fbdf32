package inventory

import (
	"net/http"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/roles"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/security"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	Repository InventoryRepository
}

func NewInventoryHandler(r InventoryRepository) *InventoryHandler {
	return &InventoryHandler{Repository: r}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/inventory", security.Authorize(roles.Technician), h.GetOwnInventory)
	router.GET("/vehicles/:id/inventory", security.Authorize(roles.Manager), h.GetVehicleInventory)
	router.PUT("/vehicles/:id/inventory", security.Authorize(roles.Manager), h.SetQuantity)
}

// GetOwnInventory lists the stock of the caller's vehicle. The vehicle comes
// from the session, never from the request, so a technician cannot read
// another vehicle's inventory.
func (h *InventoryHandler) GetOwnInventory(c *gin.Context) {
	user, err := security.SessionUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authenticated user", "details": err.Error()})
		return
	}

	if user.VehicleID == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "No vehicle assigned to this user"})
		return
	}

	inventory, err := h.Repository.GetVehicleInventory(*user.VehicleID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list inventory", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, inventory)
}

func (h *InventoryHandler) GetVehicleInventory(c *gin.Context) {
	inventory, err := h.Repository.GetVehicleInventory(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list inventory", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, inventory)
}

// SetQuantity is the manager's explicit stock adjustment; approving a
// submission never touches these rows.
func (h *InventoryHandler) SetQuantity(c *gin.Context) {
	var req struct {
		ItemID   string `json:"item_id" binding:"required"`
		Quantity *int   `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if *req.Quantity < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Quantity must not be negative"})
		return
	}

	if err := h.Repository.SetQuantity(c.Param("id"), req.ItemID, *req.Quantity); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not set inventory quantity", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicle_id": c.Param("id"),
		"item_id":    req.ItemID,
		"quantity":   *req.Quantity,
	})
}
