package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"digitalium/internal/config"
	"digitalium/internal/domain/models/org"
	"digitalium/internal/domain/services"
	filingSvc "digitalium/internal/domain/services/filing"
	orgSvc "digitalium/internal/domain/services/org"
	"digitalium/internal/repository/postgres"
	serviceFiling "digitalium/internal/service/filing"
	serviceOrg "digitalium/internal/service/org"
	"digitalium/internal/templates"
)

// seed provisions a demo organization against the postgres backend so the
// API has realistic data to serve during development.
func main() {
	orgID := flag.String("org", "demo-org", "Organization id to provision")
	orgName := flag.String("name", "Démo", "Organization display name")
	template := flag.String("template", "enterprise", "Workflow template id")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: never seed demo data into production
	if cfg.Environment == "prod" {
		log.Fatalf("🚫 BLOCKED: Cannot seed demo data in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("🌱 Seeding demo organization (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	storeConfig := &postgres.StoreConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	folderStore := postgres.NewFolderStore(storeConfig)
	itemStore := postgres.NewItemStore(storeConfig)
	unitStore := postgres.NewUnitStore(storeConfig)
	txManager := postgres.NewTransactionManager(pool)

	registry, err := templates.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load template catalog: %v", err)
	}

	ids := services.UUIDGenerator{}
	clock := services.RealClock{}
	folderService := serviceFiling.NewFolderService(folderStore, itemStore, txManager, ids, clock, logger)
	archiveService := serviceFiling.NewArchiveService(folderStore, itemStore, registry, txManager, ids, clock, logger)
	unitService := serviceOrg.NewUnitGraphService(unitStore, registry, ids, clock, logger)
	setupService := serviceOrg.NewSetupOrchestrator(registry, unitService, archiveService, unitStore, txManager, logger)

	// Provision the organization from the template
	result, err := setupService.Provision(ctx, &orgSvc.ProvisionRequest{
		OrgID:    *orgID,
		Name:     *orgName,
		Template: org.TemplateID(*template),
	})
	if err != nil {
		log.Fatalf("Failed to provision organization: %v", err)
	}
	log.Printf("✅ Organization %s provisioned from template %s (%d units, %d archive roots)",
		result.OrgID, result.Template, len(result.Units), len(result.ArchiveRoots))

	// A small document folder tree with items
	projects, err := folderService.CreateFolder(ctx, &filingSvc.CreateFolderRequest{
		OrgID: *orgID,
		Name:  "Projets",
		Color: "blue",
	})
	if err != nil {
		log.Fatalf("Failed to create folder: %v", err)
	}
	yearly, err := folderService.CreateFolder(ctx, &filingSvc.CreateFolderRequest{
		OrgID:    *orgID,
		Name:     "2026",
		Color:    "green",
		ParentID: &projects.ID,
	})
	if err != nil {
		log.Fatalf("Failed to create folder: %v", err)
	}
	for _, name := range []string{"budget.pdf", "compte-rendu.docx"} {
		if _, err := folderService.AddItem(ctx, *orgID, yearly.ID, name); err != nil {
			log.Fatalf("Failed to add item: %v", err)
		}
	}

	log.Printf("✅ Seeding complete (org: %s)", *orgID)
}
