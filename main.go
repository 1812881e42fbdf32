package main

import (
	"context"
	"log"
	"os"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/cmd"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/core/container"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/core/logger"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/core/routes"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/database"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/middleware"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Subcommands (migrate) run instead of the server.
	if len(os.Args) > 1 {
		cmd.Execute(ctx)
		return
	}

	zlog := logger.NewLogger()
	defer zlog.Sync()

	if version := os.Getenv("APP_VERSION"); version != "" {
		middleware.SetVersion(version)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer db.Close()

	log.Println("Connected to the database successfully!")

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	appContainer := container.NewAppContainer(db)

	listener, err := realtime.NewListener(dbURL, appContainer.Hub, zlog)
	if err != nil {
		log.Fatalf("Error starting change feed listener: %v", err)
	}
	go listener.Run(ctx)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())

	routes.RegisterUtilityRoutes(router)
	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)

	if err := router.Run(os.Getenv("APP_HOST")); err != nil {
		panic(err)
	}
}
