package catalog

import (
	"net/http"
	"strings"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/auditlog"
	custom_error "github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/errors"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/metadata"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/roles"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/security"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	Repository ItemRepository
	AuditLog   *auditlog.Auditlog
}

func NewItemHandler(r ItemRepository, a *auditlog.Auditlog) *ItemHandler {
	return &ItemHandler{
		Repository: r,
		AuditLog:   a,
	}
}

// The list is readable by both roles: managers browse the catalog, the
// technician material-request screen picks from it. Mutations are manager
// only.
func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/items", h.GetItems)
	router.POST("/items", security.Authorize(roles.Manager), h.CreateItem)
	router.PATCH("/items/:id", security.Authorize(roles.Manager), h.UpdateItem)
	router.DELETE("/items/:id", security.Authorize(roles.Manager), h.DeleteItem)
}

func (h *ItemHandler) GetItems(c *gin.Context) {
	items, err := h.Repository.GetItems()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list catalog items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Item name must not be empty"})
		return
	}

	category, err := metadata.NewCategory(req.Category)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid category", "details": err.Error()})
		return
	}
	req.Category = string(category)

	item, err := h.Repository.PersistItem(req)
	if _, ok := err.(*custom_error.UniqueViolationError); ok {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Could not insert item, SKU not unique", "details": err.Error()})
		return
	} else if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not insert item", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		c.GetString("userID"),
		map[string]interface{}{
			"name":     item.Name,
			"sku":      item.SKU,
			"category": item.Category,
		},
		item,
	)

	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if req.Category != nil {
		category, err := metadata.NewCategory(*req.Category)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid category", "details": err.Error()})
			return
		}
		normalized := string(category)
		req.Category = &normalized
	}

	item, err := h.Repository.UpdateItem(c.Param("id"), req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not update item", "details": err.Error()})
		return
	}

	go h.AuditLog.Log("update", c.GetString("userID"), map[string]interface{}{"name": item.Name}, item)

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	err := h.Repository.DeleteItem(c.Param("id"))
	if _, ok := err.(*custom_error.ForeignKeyViolationError); ok {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Could not delete item", "details": err.Error()})
		return
	} else if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not delete item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
