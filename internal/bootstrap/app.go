package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"

	googleauth "utilitycompare-backend/internal/auth"
	"utilitycompare-backend/internal/billproc"
	"utilitycompare-backend/internal/bills"
	"utilitycompare-backend/internal/dashboard"
	"utilitycompare-backend/internal/extract"
	"utilitycompare-backend/internal/llm"
	"utilitycompare-backend/internal/llm/bedrock"
	"utilitycompare-backend/internal/shared/config"
	"utilitycompare-backend/internal/shared/server"
	"utilitycompare-backend/internal/shared/storage/db"
	"utilitycompare-backend/internal/shared/storage/object"
	localstore "utilitycompare-backend/internal/shared/storage/object/local"
	s3store "utilitycompare-backend/internal/shared/storage/object/s3"
	"utilitycompare-backend/internal/uploads"
	"utilitycompare-backend/internal/users"
)

// App holds the shared dependency graph. Every collaborator is an explicit
// handle; nothing is reached through package globals, so tests and the
// different entrypoints can swap any piece.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	BillsRepo   bills.Repo
	UsersRepo   users.Repo
	Interpreter llm.Interpreter
	Extractor   *extract.Extractor
	RecordStore *bills.Store
	Pipeline    *billproc.Pipeline

	BillsService     *bills.Service
	UploadsService   *uploads.Service
	DashboardService *dashboard.Service
	UsersService     *users.Service

	BillsHandler     *bills.Handler
	UploadsHandler   *uploads.Handler
	DashboardHandler *dashboard.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares the dependency graph for the API surface. The processing
// pipeline is wired separately via BuildPipeline because only the worker
// entrypoints need the Bedrock client.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	billsRepo, err := buildBillsRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Store:     store,
		BillsRepo: billsRepo,
	}

	if sqlDB != nil {
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
	}
	app.UsersService = users.NewService(app.UsersRepo)

	app.BillsService = &bills.Service{Repo: app.BillsRepo, Store: app.Store}
	app.UploadsService = uploads.NewService(app.Store)
	app.DashboardService = dashboard.NewService(app.BillsRepo)

	app.BillsHandler = bills.NewHandler(app.BillsService)
	app.UploadsHandler = uploads.NewHandler(app.UploadsService)
	app.DashboardHandler = dashboard.NewHandler(app.DashboardService)

	app.GoogleAuth = googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
	)
	app.GoogleAuth.Users = app.UsersService

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		UploadsHandler:   app.UploadsHandler,
		BillsHandler:     app.BillsHandler,
		DashboardHandler: app.DashboardHandler,
		GoogleAuth:       app.GoogleAuth,
	})

	return app, nil
}

// BuildPipeline wires the extract, interpret, store sequence onto an
// existing App. It is the only place the Bedrock client is constructed.
func (app *App) BuildPipeline(ctx context.Context) error {
	if app.Pipeline != nil {
		return nil
	}

	if app.Interpreter == nil {
		client, err := bedrock.New(ctx, app.Config.BedrockRegion, app.Config.BedrockModelID, int32(app.Config.BedrockMaxTokens))
		if err != nil {
			return fmt.Errorf("build bedrock client: %w", err)
		}
		app.Interpreter = client
	}
	if app.Extractor == nil {
		app.Extractor = &extract.Extractor{Store: app.Store}
	}
	if app.RecordStore == nil {
		app.RecordStore = bills.NewStore(app.BillsRepo)
	}

	app.Pipeline = &billproc.Pipeline{
		Extractor:   app.Extractor,
		Interpreter: app.Interpreter,
		Records:     app.RecordStore,
	}
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("DATABASE_URL is required in production")
		}
		log.Printf("bootstrap: DATABASE_URL empty; using in-memory user repository")
		return nil, nil
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultLambdaOptions()))
	} else {
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	}
	if err != nil {
		if cfg.Env != "production" {
			log.Printf("bootstrap: database connect failed; using in-memory user repository: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.UploadsBucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires BILLS_S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.UploadsBucket)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildBillsRepo(ctx context.Context, cfg config.Config) (bills.Repo, error) {
	// Local object storage implies a fully local dev setup; pair it with
	// the in-memory bill repo instead of requiring DynamoDB.
	if cfg.ObjectStoreType != "s3" && cfg.Env != "production" {
		return bills.NewMemoryRepo(), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &bills.DynamoRepo{
		Client: dynamodb.NewFromConfig(awsCfg),
		Table:  cfg.BillsTable,
	}, nil
}
