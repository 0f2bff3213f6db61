package router

import (
	"time"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/auth"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/config"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/handler"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/infra"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/metrics"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/middleware"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/repository"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/service"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/ui"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// loopbackProxies are the peers whose X-Forwarded-For header is honoured.
var loopbackProxies = []string{"127.0.0.1", "::1"}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB. rdb may be nil.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// The UI reaches the API over loopback and forwards the browser's address
	// in X-Forwarded-For; only loopback peers are trusted to set it.
	if err := r.SetTrustedProxies(loopbackProxies); err != nil {
		log.Error().Err(err).Msg("invalid trusted proxies")
	}

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Metrics())

	r.SetHTMLTemplate(ui.Templates())

	// ── Infrastructure ───────────────────────────────────────────────────────
	tokenTTL := time.Duration(cfg.JWTExpirationHours) * time.Hour
	issuer := auth.NewIssuer(cfg.JWTSecret, tokenTTL)

	var loginLimiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.LoginRateLimit, time.Minute)
	if rdb != nil {
		loginLimiter = infra.NewRedisLimiter(rdb, "ratelimit:login", cfg.LoginRateLimit, time.Minute)
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, issuer, cfg.BcryptCost)
	categorySvc := service.NewCategoryService(categoryRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo, supplierRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo)
	reportSvc := service.NewReportService(reportRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	apiClient := ui.NewAPIClient(
		cfg.APIBaseURL,
		time.Duration(cfg.UIRequestTimeoutSeconds)*time.Second,
		infra.NewCircuitBreaker(infra.DefaultCBConfig("ui-api")),
	)
	uiH := ui.NewHandler(apiClient, issuer, cfg.CookieSecure, int(tokenTTL.Seconds()))

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/", handler.Root)
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	authG := r.Group("/auth")
	{
		authG.POST("/register", authH.Register)
		authG.POST("/login", middleware.RateLimit(loginLimiter, "Too many login attempts"), authH.Login)
		authG.GET("/me", middleware.JWTAuth(issuer), authH.Me)
	}

	// Protected routes
	api := r.Group("/api", middleware.JWTAuth(issuer))
	{
		categories := api.Group("/categories")
		{
			categories.POST("", categoriesH.Create)
			categories.GET("", categoriesH.List)
			categories.GET("/:id", categoriesH.Get)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		suppliers := api.Group("/suppliers")
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("", suppliersH.List)
			suppliers.GET("/:id", suppliersH.Get)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Delete)
		}

		products := api.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		sales := api.Group("/sales")
		{
			sales.POST("", salesH.Create)
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.Get)
			sales.PUT("/:id", salesH.Update)
			sales.DELETE("/:id", salesH.Delete)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/inventory", reportsH.Inventory)
			reports.GET("/inventory.pdf", reportsH.InventoryPDF)
			reports.GET("/sales", reportsH.Sales)
		}
	}

	// Server-rendered pages; they call the routes above over HTTP.
	uiH.Register(r.Group("/ui"))

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
