package users

import (
	"net/http"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/auditlog"
	custom_error "github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/errors"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/roles"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/security"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type UsersHandler struct {
	Repository UserRepository
	AuditLog   *auditlog.Auditlog
}

func NewHandler(r UserRepository, a *auditlog.Auditlog) *UsersHandler {
	return &UsersHandler{
		Repository: r,
		AuditLog:   a,
	}
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	manager := security.Authorize(roles.Manager)
	router.GET("/users", manager, h.GetUserList)
	router.POST("/users", manager, h.RegisterUser)
	router.PATCH("/users/:id", manager, h.UpdateUser)
	router.DELETE("/users/:id", manager, h.DeleteUser)
}

func (h *UsersHandler) RegisterUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !roles.Role(req.Role).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role: " + req.Role})
		return
	}

	// Only technicians belong to a vehicle; a manager's vehicle_id is
	// always null.
	if roles.Role(req.Role) == roles.Technician {
		if req.VehicleID == nil || *req.VehicleID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Technician requires an assigned vehicle"})
			return
		}
	} else {
		req.VehicleID = nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user, err := h.Repository.PersistUser(req, hashedPassword)
	if _, ok := err.(*custom_error.UniqueViolationError); ok {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not insert user, name not unique", "details": err.Error()})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create user",
			"details": err.Error(),
		})
		return
	}

	go h.AuditLog.Log("create", c.GetString("userID"), map[string]interface{}{"name": user.Name, "role": user.Role}, user)

	c.JSON(http.StatusCreated, user)
}

func (h *UsersHandler) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID := c.Param("id")

	user, err := h.Repository.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find user", "details": err.Error(), "code": "USER_NOT_FOUND"})
		return
	}

	changes := &models.UserChanges{}

	if req.Name != nil && *req.Name != "" && *req.Name != user.Name {
		changes.Name = req.Name
	}

	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) > 5 {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
				return
			}
			passwordHash := string(hashedPassword)
			changes.PasswordHash = &passwordHash
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long"})
			return
		}
	}

	role := user.Role
	if req.Role != nil && *req.Role != user.Role {
		if !roles.Role(*req.Role).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role: " + *req.Role})
			return
		}
		changes.Role = req.Role
		role = *req.Role
	}

	if roles.Role(role) == roles.Technician {
		if req.VehicleID != nil && *req.VehicleID != "" {
			changes.VehicleID = req.VehicleID
		} else if user.VehicleID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Technician requires an assigned vehicle"})
			return
		}
	} else if user.VehicleID != nil {
		changes.ClearVehicle = true
	}

	if !changes.HasChanges() {
		c.JSON(http.StatusOK, user)
		return
	}

	if err := h.Repository.UpdateUser(userID, changes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user", "details": err.Error()})
		return
	}

	updatedUser, err := h.Repository.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get updated user", "details": err.Error()})
		return
	}

	go h.AuditLog.Log("update", c.GetString("userID"), map[string]interface{}{"name": updatedUser.Name, "role": updatedUser.Role}, updatedUser)

	c.JSON(http.StatusOK, updatedUser)
}

func (h *UsersHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")

	authID, ok := c.Get("userID")
	if ok && authID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	if err := h.Repository.DeleteUser(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *UsersHandler) GetUserList(c *gin.Context) {
	users, err := h.Repository.GetUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain list of users", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}
