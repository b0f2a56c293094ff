package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"digitalium/internal/auth"
	"digitalium/internal/config"
	"digitalium/internal/domain/repositories"
	"digitalium/internal/domain/services"
	"digitalium/internal/handler"
	"digitalium/internal/middleware"
	"digitalium/internal/repository/memory"
	"digitalium/internal/repository/postgres"
	serviceFiling "digitalium/internal/service/filing"
	serviceOrg "digitalium/internal/service/org"
	"digitalium/internal/templates"
)

// stores bundles the persistence layer behind the backend selection.
type stores struct {
	folders   repositories.FolderStore
	items     repositories.ItemStore
	units     repositories.UnitStore
	txManager repositories.TransactionManager
	close     func()
}

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 5)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
	)

	// Select the persistence backend
	ctx := context.Background()
	st, err := buildStores(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize stores: %v", err)
	}
	defer st.close()

	// Load the embedded template catalog
	registry, err := templates.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load template catalog: %v", err)
	}
	logger.Info("template catalog loaded", "templates", len(registry.ListTemplates()))

	// Create services
	ids := services.UUIDGenerator{}
	clock := services.RealClock{}
	folderService := serviceFiling.NewFolderService(st.folders, st.items, st.txManager, ids, clock, logger)
	archiveService := serviceFiling.NewArchiveService(st.folders, st.items, registry, st.txManager, ids, clock, logger)
	unitService := serviceOrg.NewUnitGraphService(st.units, registry, ids, clock, logger)
	setupService := serviceOrg.NewSetupOrchestrator(registry, unitService, archiveService, st.units, st.txManager, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	archiveHandler := handler.NewArchiveHandler(archiveService, logger)
	unitHandler := handler.NewUnitHandler(unitService, logger)
	setupHandler := handler.NewSetupHandler(setupService, logger)
	templateHandler := handler.NewTemplateHandler(registry, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", folderHandler.HealthCheck)

	// Document folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.ListRoots)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("GET /api/folders/{id}/children", folderHandler.ListChildren)
	mux.HandleFunc("GET /api/folders/{id}/breadcrumb", folderHandler.Breadcrumb)
	mux.HandleFunc("GET /api/folders/{id}/count", folderHandler.ItemCount)
	mux.HandleFunc("POST /api/folders/{id}/items", folderHandler.AddItem)

	// Archive folder routes
	mux.HandleFunc("POST /api/archive/folders", archiveHandler.CreateFolder)
	mux.HandleFunc("GET /api/archive/folders/{id}", archiveHandler.GetFolder)
	mux.HandleFunc("PATCH /api/archive/folders/{id}", archiveHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/archive/folders/{id}", archiveHandler.DeleteFolder)
	mux.HandleFunc("GET /api/archive/folders/{id}/children", archiveHandler.ListChildren)
	mux.HandleFunc("GET /api/archive/folders/{id}/breadcrumb", archiveHandler.Breadcrumb)
	mux.HandleFunc("GET /api/archive/folders/{id}/count", archiveHandler.ItemCount)
	mux.HandleFunc("POST /api/archive/folders/{id}/items", archiveHandler.AddItem)
	mux.HandleFunc("GET /api/archive/categories/{category}/root", archiveHandler.RootFolder)
	mux.HandleFunc("GET /api/archive/categories/{category}/folders", archiveHandler.ListCategoryRoots)

	// Organization unit routes
	mux.HandleFunc("GET /api/units", unitHandler.ListUnits)
	mux.HandleFunc("POST /api/units", unitHandler.CreateUnit)
	mux.HandleFunc("GET /api/units/{id}", unitHandler.GetUnit)
	mux.HandleFunc("GET /api/units/{id}/children", unitHandler.ListChildren)
	mux.HandleFunc("PUT /api/units/{id}/config", unitHandler.SetUnitConfig)
	mux.HandleFunc("GET /api/units/{id}/effective-config", unitHandler.EffectiveConfig)

	// Provisioning and template catalog routes
	mux.HandleFunc("POST /api/setup", setupHandler.Provision)
	mux.HandleFunc("GET /api/templates", templateHandler.ListTemplates)
	mux.HandleFunc("GET /api/templates/{id}", templateHandler.GetTemplate)
	mux.HandleFunc("GET /api/templates/{id}/config", templateHandler.GetTemplateConfig)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	if cfg.AuthDisabled {
		logger.Warn("AUTH DISABLED: requests run as a fixed dev identity (NEVER use in production!)",
			"user_id", cfg.DevUserID,
			"org_id", cfg.DevOrgID,
		)
		root = middleware.DevAuthMiddleware(cfg.DevUserID, cfg.DevOrgID)(root)
	} else {
		jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer jwtVerifier.Close()
		root = middleware.AuthMiddleware(jwtVerifier)(root)
	}
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildStores selects between the copy-on-write in-memory backend and the
// durable postgres backend. Both serve the same service layer.
func buildStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	switch cfg.StoreBackend {
	case "postgres":
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("database connected",
			"max_conns", 25,
			"min_conns", 5,
			"table_prefix", cfg.TablePrefix,
		)
		storeConfig := &postgres.StoreConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		return &stores{
			folders:   postgres.NewFolderStore(storeConfig),
			items:     postgres.NewItemStore(storeConfig),
			units:     postgres.NewUnitStore(storeConfig),
			txManager: postgres.NewTransactionManager(pool),
			close:     pool.Close,
		}, nil
	default:
		logger.Info("using in-memory store backend")
		return &stores{
			folders:   memory.NewFolderStore(),
			items:     memory.NewItemStore(),
			units:     memory.NewUnitStore(),
			txManager: memory.NewTransactionManager(),
			close:     func() {},
		}, nil
	}
}
