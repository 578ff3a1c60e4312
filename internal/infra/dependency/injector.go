// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sales-dashboard/backend/config"
	"github.com/sales-dashboard/backend/internal/application/adapter"
	"github.com/sales-dashboard/backend/internal/application/usecase/auth"
	"github.com/sales-dashboard/backend/internal/application/usecase/upload"
	"github.com/sales-dashboard/backend/internal/infra/cache"
	"github.com/sales-dashboard/backend/internal/infra/metrics"
	"github.com/sales-dashboard/backend/internal/infra/server/router"
	"github.com/sales-dashboard/backend/internal/integration/adapters"
	"github.com/sales-dashboard/backend/internal/integration/entrypoint/controller"
	"github.com/sales-dashboard/backend/internal/integration/entrypoint/middleware"
	"github.com/sales-dashboard/backend/internal/integration/persistence"
	"github.com/sales-dashboard/backend/internal/integration/report"
	"github.com/sales-dashboard/backend/internal/integration/spreadsheet"
)

// Options carries the optional collaborators of the injector.
type Options struct {
	// Redis backs the rate limiters when set.
	Redis *redis.Client
	// Metrics enables Prometheus instrumentation when set.
	Metrics *metrics.Metrics
	// PasswordService overrides the bcrypt service.
	PasswordService adapter.PasswordService
	// DBHealthChecker overrides the default ping of db.
	DBHealthChecker func() bool
}

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	uploadRepo := persistence.NewUploadRepository(db)

	// Create adapters/services
	passwordService := opts.PasswordService
	if passwordService == nil {
		passwordService = adapters.NewPasswordService()
	}
	tokenService := adapters.NewTokenService(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		tokenRepo,
	)
	tableReader := spreadsheet.NewReader(cfg.Upload.Extensions)
	renderer := report.NewExcelRenderer()

	var uploadMetrics adapter.UploadMetrics
	if opts.Metrics != nil {
		uploadMetrics = opts.Metrics
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create upload use cases
	uploadUseCase := upload.NewUploadSalesFileUseCase(uploadRepo, tableReader, uploadMetrics)
	listUploadsUseCase := upload.NewListUploadsUseCase(uploadRepo)
	deleteUploadUseCase := upload.NewDeleteUploadUseCase(uploadRepo)
	getDashboardUseCase := upload.NewGetDashboardUseCase(uploadRepo)
	exportReportUseCase := upload.NewExportReportUseCase(uploadRepo, renderer)

	// Create controllers
	dbHealthChecker := opts.DBHealthChecker
	if dbHealthChecker == nil {
		dbHealthChecker = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}
	var cacheHealthChecker func() bool
	if opts.Redis != nil {
		cacheHealthChecker = cache.HealthChecker(opts.Redis)
	}

	controllers := router.Controllers{
		Health: controller.NewHealthController(dbHealthChecker, cacheHealthChecker),
		Auth: controller.NewAuthController(
			registerUseCase,
			loginUseCase,
			refreshTokenUseCase,
			logoutUseCase,
		),
		Upload: controller.NewUploadController(
			uploadUseCase,
			listUploadsUseCase,
			deleteUploadUseCase,
			cfg.Upload.MaxBytes,
		),
		Dashboard: controller.NewDashboardController(getDashboardUseCase),
		Report:    controller.NewReportController(exportReportUseCase),
	}

	// Create middleware
	var limitStore middleware.RateLimitStore
	if opts.Redis != nil {
		limitStore = middleware.NewRedisStore(opts.Redis)
	}
	middlewares := router.Middlewares{
		Auth:            middleware.NewAuthMiddleware(tokenService),
		LoginRateLimit:  middleware.NewRateLimiterWithConfig("login", limitStore, cfg.RateLimit.LoginLimit, cfg.RateLimit.Window),
		UploadRateLimit: middleware.NewRateLimiterWithConfig("upload", limitStore, cfg.RateLimit.UploadLimit, cfg.RateLimit.Window),
	}
	if opts.Metrics != nil {
		middlewares.RequestObserver = opts.Metrics
		middlewares.MetricsHandler = opts.Metrics.Handler()
	}

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: router.NewRouter(controllers, middlewares),
	}
}
