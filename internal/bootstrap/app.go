package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"resume-builder/internal/generatedresumes"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
	redisstore "resume-builder/internal/shared/storage/redis"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/users"
	"resume-builder/resume/render"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config                  config.Config
	Router                  *gin.Engine
	DB                      *sql.DB
	Redis                   *goredis.Client
	Store                   object.Store
	Tokens                  *auth.Tokens
	UsersService            *users.Service
	ResumesService          *resumes.Service
	GeneratedResumesService *generatedresumes.Service
}

// Options replaces dependencies that tests cannot provide.
type Options struct {
	// Renderer overrides the headless Chrome renderer.
	Renderer resumes.PDFRenderer
}

// Build prepares shared dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Redis:  buildRedis(ctx, cfg),
		Store:  store,
		Tokens: tokens,
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.NewRenderer(render.ChromeLauncher{ExecPath: cfg.ChromePath}, cfg.RenderTimeout)
	}
	buildServices(app, renderer)

	var healthSvc *health.Service
	if app.DB != nil {
		healthSvc = health.NewService(app.DB)
	} else {
		healthSvc = health.NewService(nil)
	}

	deps := server.RouterDeps{
		Config:        cfg,
		Tokens:        tokens,
		Health:        healthSvc,
		UserHandler:   users.NewHandler(app.UsersService),
		ResumeHandler: resumes.NewHandler(app.ResumesService),
		Redis:         app.Redis,
	}
	if app.GeneratedResumesService != nil {
		deps.GeneratedHandler = generatedresumes.NewHandler(app.GeneratedResumesService)
	}
	app.Router = server.NewRouter(deps)

	return app, nil
}

// Close releases the database and Redis connections.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	if db.IsLambdaRuntime() {
		opts = db.OptionsFromEnv(db.DefaultLambdaOptions())
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Error("bootstrap.database_fallback", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "none":
		return nil, nil
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildRedis connects the shared limiter backend. Without it each instance
// limits in process.
func buildRedis(ctx context.Context, cfg config.Config) *goredis.Client {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return nil
	}
	client, err := redisstore.Connect(ctx, cfg.RedisURL)
	if err != nil {
		telemetry.Error("bootstrap.redis_unavailable", map[string]any{"error": err.Error()})
		return nil
	}
	return client
}

func buildServices(app *App, renderer resumes.PDFRenderer) {
	var (
		userRepo      users.Repo
		resumeRepo    resumes.Repo
		generatedRepo generatedresumes.Repo
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		generatedRepo = &generatedresumes.PGRepo{DB: app.DB}
	} else {
		memUsers := users.NewMemoryRepo()
		userRepo = memUsers
		resumeRepo = resumes.NewMemoryRepo(memUsers)
		generatedRepo = generatedresumes.NewMemoryRepo()
	}

	var archiver resumes.Archiver
	if app.Store != nil {
		app.GeneratedResumesService = generatedresumes.NewService(generatedRepo, app.Store)
		archiver = app.GeneratedResumesService
	}

	app.UsersService = users.NewService(userRepo, app.Tokens, app.Config.BcryptCost)
	app.ResumesService = resumes.NewService(resumeRepo, renderer, archiver)
}
