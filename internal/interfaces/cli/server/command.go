package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"civicwatch/internal/application/workflow/usecases"
	"civicwatch/internal/domain/assignment"
	"civicwatch/internal/infrastructure/cache"
	"civicwatch/internal/infrastructure/config"
	"civicwatch/internal/infrastructure/database"
	"civicwatch/internal/infrastructure/migration"
	"civicwatch/internal/infrastructure/repository"
	"civicwatch/internal/infrastructure/services"
	workflowhandlers "civicwatch/internal/interfaces/http/handlers/workflow"
	"civicwatch/internal/interfaces/http/routes"
	"civicwatch/internal/shared/db"
	"civicwatch/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the CivicWatch workflow HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ginMode := mapEnvToGinMode(env)
	cfg.Server.Mode = ginMode

	if err := logger.Init(&cfg.Logger, ginMode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()
	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(ginMode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment")
		}
		migrationManager := migration.NewManager(env)
		if err := migrationManager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	cursors := buildCursorStore(cfg, log)
	engine := buildEngine(cfg, cursors)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", ginMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

// buildCursorStore prefers the shared Redis cursor so round-robin rotation
// survives restarts; a single node without Redis falls back to the in-memory
// store.
func buildCursorStore(cfg *config.Config, log logger.Interface) assignment.CursorStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warnw("redis unavailable, using in-memory rotation cursor", "error", err)
		client.Close()
		return assignment.NewInMemoryCursorStore()
	}

	log.Infow("redis connected", "addr", cfg.Redis.GetAddr())
	return cache.NewRotationCursorStore(client)
}

func buildEngine(cfg *config.Config, cursors assignment.CursorStore) *gin.Engine {
	gormDB := database.Get()
	log := logger.NewLogger()

	reportRepo := repository.NewReportRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	officerRepo := repository.NewOfficerRepository(gormDB)
	departmentRepo := repository.NewDepartmentRepository(gormDB)
	historyRepo := repository.NewStatusHistoryRepository(gormDB)
	workloadRepo := repository.NewWorkloadRepository(gormDB)
	txMgr := db.NewTransactionManager(gormDB)

	params := assignment.ScoringParams{
		Weight:              cfg.Workflow.BalancedWeight,
		BaselineResolution:  time.Duration(cfg.Workflow.BaselineResolutionMinutes) * time.Minute,
		ModerateThreshold:   cfg.Workflow.CapacityModerateThreshold,
		HighThreshold:       cfg.Workflow.CapacityHighThreshold,
		OverloadedThreshold: cfg.Workflow.CapacityOverloadedThreshold,
	}
	window := time.Duration(cfg.Workflow.WorkloadWindowDays) * 24 * time.Hour
	balancer := assignment.NewBalancer(workloadRepo, cursors, params, window)

	numberGen := services.NewReportNumberGenerator(gormDB)
	createReportUC := usecases.NewCreateReportUseCase(reportRepo, historyRepo, numberGen, txMgr, log)
	getReportUC := usecases.NewGetReportUseCase(reportRepo, taskRepo, historyRepo, log)
	listReportsUC := usecases.NewListReportsUseCase(reportRepo, log)
	assignDepartmentUC := usecases.NewAssignDepartmentUseCase(reportRepo, departmentRepo, historyRepo, txMgr, log)
	assignOfficerUC := usecases.NewAssignOfficerUseCase(reportRepo, taskRepo, officerRepo, historyRepo, txMgr, log)
	autoAssignOfficerUC := usecases.NewAutoAssignOfficerUseCase(reportRepo, officerRepo, balancer, assignOfficerUC, log)
	updateStatusUC := usecases.NewUpdateStatusUseCase(reportRepo, taskRepo, officerRepo, historyRepo, txMgr, log)
	changeOfficerDeptUC := usecases.NewChangeOfficerDepartmentUseCase(
		officerRepo, departmentRepo, reportRepo, taskRepo, historyRepo, balancer, txMgr, log)
	bulkApplyUC := usecases.NewBulkApplyUseCase(
		reportRepo, updateStatusUC, assignDepartmentUC, departmentRepo, cfg.Workflow.BulkMaxBatchSize, log)

	reportHandler := workflowhandlers.NewReportHandler(
		createReportUC,
		getReportUC,
		listReportsUC,
		assignDepartmentUC,
		assignOfficerUC,
		autoAssignOfficerUC,
		updateStatusUC,
		bulkApplyUC,
	)
	officerHandler := workflowhandlers.NewOfficerHandler(changeOfficerDeptUC)

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupWorkflowRoutes(engine, &routes.WorkflowRouteConfig{
		ReportHandler:  reportHandler,
		OfficerHandler: officerHandler,
	})

	return engine
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
