package main

import (
	"context"
	"fmt"
	common_api "go-lms-bridge/internal/common/api"
	"go-lms-bridge/internal/config"
	"go-lms-bridge/internal/database"
	"go-lms-bridge/internal/features/audit"
	"go-lms-bridge/internal/features/capability"
	"go-lms-bridge/internal/features/entity"
	"go-lms-bridge/internal/features/export"
	"go-lms-bridge/internal/features/mapper"
	"go-lms-bridge/internal/features/meta"
	"go-lms-bridge/internal/features/reconcile"
	"go-lms-bridge/internal/features/settings"
	sync_feature "go-lms-bridge/internal/features/sync"
	"go-lms-bridge/internal/features/system"
	"go-lms-bridge/internal/logger"
	"go-lms-bridge/internal/middleware"
	"go-lms-bridge/pkg/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for _, route := range routes {
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(
	lc fx.Lifecycle,
	entityRepo entity.EntityRepository,
	metaRepo meta.MetaRepository,
	capabilityRepo capability.CapabilityRepository,
	mapperRepo mapper.MapperRepository,
	syncLogRepo sync_feature.SyncLogRepository,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := entityRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure entity indexes: %v", err)
				}
				if err := metaRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure meta indexes: %v", err)
				}
				if err := capabilityRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure capability indexes: %v", err)
				}
				if err := mapperRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure mapper indexes: %v", err)
				}
				if err := syncLogRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure sync log indexes: %v", err)
				}
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			audit.NewAuditRepository,
			entity.NewEntityRepository,
			meta.NewMetaRepository,
			capability.NewCapabilityRepository,
			mapper.NewMapperRepository,
			sync_feature.NewSyncLogRepository,
			reconcile.NewReconcileRepository,

			audit.NewAuditService,
			entity.NewEntityService,
			meta.NewMetaService,
			capability.NewCapabilityService,
			mapper.NewMapperService,
			sync_feature.NewSyncService,
			settings.NewSettingsService,
			reconcile.NewReconcileService,
			export.NewExportService,

			system.NewHub,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(r entity.EntityRepository) meta.EntityFinder { return r },
			func(r meta.MetaRepository) entity.MetaPurger { return r },
			func(r entity.EntityRepository) sync_feature.EntityFinder { return r },
			func(r entity.EntityRepository) settings.EntityFinder { return r },
			func(h *system.Hub) sync_feature.EventBroadcaster { return h },
			func() sync_feature.Clock { return sync_feature.SystemClock() },

			// Initialize Controller
			audit.NewAuditController,
			entity.NewEntityController,
			meta.NewMetaController,
			capability.NewCapabilityController,
			mapper.NewMapperController,
			sync_feature.NewSyncController,
			settings.NewSettingsController,
			reconcile.NewReconcileController,
			export.NewExportController,
			system.NewWebSocketController,

			// Initialize API Routes
			AsRoute(audit.NewAuditApi),
			AsRoute(entity.NewEntityApi),
			AsRoute(meta.NewMetaApi),
			AsRoute(capability.NewCapabilityApi),
			AsRoute(mapper.NewMapperApi),
			AsRoute(sync_feature.NewSyncApi),
			AsRoute(settings.NewSettingsApi),
			AsRoute(reconcile.NewReconcileApi),
			AsRoute(export.NewExportApi),
			AsRoute(system.NewWebSocketApi),
			AsRoute(system.NewHealthApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,

			// Hook the mirror engine into the property change feed.
			func(metaService meta.MetaService, syncService sync_feature.SyncService) {
				metaService.RegisterHandler(syncService)
			},

			// Load site-custom mappings once storage is up.
			func(lc fx.Lifecycle, mapperService mapper.MapperService, logger *zap.Logger) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						if err := mapperService.Reload(ctx); err != nil {
							logger.Warn("custom mappings not loaded", zap.Error(err))
						}
						return nil
					},
				})
			},

			func(lc fx.Lifecycle, reconcileService reconcile.ReconcileService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return reconcileService.InitializeScheduler(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return reconcileService.StopScheduler()
					},
				})
			},

			InitializeIndexes,
		),
	)

	app.Run()
}
