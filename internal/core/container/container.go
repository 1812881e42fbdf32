package container

import (
	"database/sql"

	auditLogRepo "github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/auditlog"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/catalog"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/inventory"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/realtime"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/repository"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/requests"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/submissions"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/users"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/vehicles"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/auditlog"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/security"
)

type Container struct {
	Repository        *repository.Repository
	AuditLog          *auditlog.Auditlog
	Hub               *realtime.Hub
	LoginHandler      *security.LoginHandler
	ItemHandler       *catalog.ItemHandler
	VehicleHandler    *vehicles.VehicleHandler
	UserHandler       *users.UsersHandler
	InventoryHandler  *inventory.InventoryHandler
	SubmissionHandler *submissions.SubmissionHandler
	RequestHandler    *requests.RequestHandler
	EventsHandler     *realtime.EventsHandler
	AuditLogHandler   *auditLogRepo.AuditLogHandler
}

func NewAppContainer(db *sql.DB) *Container {
	repo := repository.NewRepository(db)
	auditRepo := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(auditRepo)
	hub := realtime.NewHub()

	loginHandler := security.NewLoginHandler(repo)
	itemHandler := catalog.NewItemHandler(catalog.NewRepository(repo), auditLog)
	vehicleHandler := vehicles.NewVehicleHandler(vehicles.NewRepository(repo), auditLog)
	userHandler := users.NewHandler(users.NewRepository(repo), auditLog)
	inventoryHandler := inventory.NewInventoryHandler(inventory.NewRepository(repo))

	submissionRepo := submissions.NewRepository(repo)
	submissionHandler := submissions.NewHandler(submissionRepo, submissions.NewService(repo, submissionRepo), auditLog)

	requestRepo := requests.NewRepository(repo)
	requestHandler := requests.NewHandler(requestRepo, requests.NewService(repo, requestRepo), auditLog)

	return &Container{
		Repository:        repo,
		AuditLog:          auditLog,
		Hub:               hub,
		LoginHandler:      loginHandler,
		ItemHandler:       itemHandler,
		VehicleHandler:    vehicleHandler,
		UserHandler:       userHandler,
		InventoryHandler:  inventoryHandler,
		SubmissionHandler: submissionHandler,
		RequestHandler:    requestHandler,
		EventsHandler:     realtime.NewEventsHandler(hub),
		AuditLogHandler:   auditLogRepo.NewHandler(auditRepo),
	}
}
