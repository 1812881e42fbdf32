package routes

import (
	"time"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/core/container"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/middleware"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/security"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes wires everything reachable without a session: login
// and the navigation gate.
func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	container.LoginHandler.RegisterRoutes(router)
}

// RegisterProtectedRoutes wires every screen-backing endpoint behind the JWT
// middleware; per-role gates live on the individual routes. The change feed
// gets its own group: a request timeout would cut long-lived event streams.
func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	protectedRoutes.Use(middleware.TimeoutMiddleware(30 * time.Second))

	container.ItemHandler.RegisterRoutes(protectedRoutes)
	container.VehicleHandler.RegisterRoutes(protectedRoutes)
	container.UserHandler.RegisterRoutes(protectedRoutes)
	container.InventoryHandler.RegisterRoutes(protectedRoutes)
	container.SubmissionHandler.RegisterRoutes(protectedRoutes)
	container.RequestHandler.RegisterRoutes(protectedRoutes)
	container.AuditLogHandler.RegisterRoutes(protectedRoutes)

	eventRoutes := router.Group("")
	eventRoutes.Use(security.JWTMiddleware())
	container.EventsHandler.RegisterRoutes(eventRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
}
