package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/audit"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/doctypes"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/documents"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/extraction"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/shared/config"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/shared/server"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/shared/storage/db"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/users"
)

// App holds shared dependencies wired for the process lifetime. Every
// collection is owned by exactly one repo; handlers only reach state
// through services.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	UsersRepo     users.Repo
	DocTypesRepo  doctypes.Repo
	DocumentsRepo documents.Repo
	AuditRepo     audit.Repo

	Extractor extraction.Extractor

	UsersService     *users.Service
	DocTypesService  *doctypes.Service
	DocumentsService *documents.Service
	AuditService     *audit.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}

	if sqlDB != nil {
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
		app.DocTypesRepo = &doctypes.PGRepo{DB: sqlDB}
		app.DocumentsRepo = &documents.PGRepo{DB: sqlDB}
		app.AuditRepo = &audit.PGRepo{DB: sqlDB}
	} else {
		app.UsersRepo = users.NewMemoryRepo(users.Seed())
		app.DocTypesRepo = doctypes.NewMemoryRepo(doctypes.Seed())
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.AuditRepo = audit.NewMemoryRepo()
	}

	app.Extractor = extraction.NewMockExtractor(cfg.ExtractionSeed)

	app.AuditService = audit.NewService(app.AuditRepo)
	app.UsersService = users.NewService(app.UsersRepo)
	app.DocTypesService = doctypes.NewService(app.DocTypesRepo, app.AuditService)
	app.DocumentsService = documents.NewService(app.DocumentsRepo, app.DocTypesRepo, app.Extractor, app.AuditService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		UsersHandler:     users.NewHandler(app.UsersService),
		DocTypesHandler:  doctypes.NewHandler(app.DocTypesService),
		DocumentsHandler: documents.NewHandler(app.DocumentsService),
		AuditHandler:     audit.NewHandler(app.AuditService),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
