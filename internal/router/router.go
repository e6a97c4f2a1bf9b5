package router

import (
	"time"

	"andespos/internal/config"
	"andespos/internal/handler"
	"andespos/internal/middleware"
	"andespos/internal/repository"
	"andespos/internal/service"
	"andespos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	cashRepo := repository.NewCashRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	cashSvc := service.NewCashService(cashRepo, saleRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, cashRepo, dispatcher)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	cashH := handler.NewCashHandler(cashSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	productsH := handler.NewProductsHandler(productRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		cash := v1.Group("/cash")
		{
			cash.POST("/open", cashH.Open)
			cash.GET("/status", cashH.Status)
			cash.POST("/movement", cashH.Movement)
			cash.POST("/close", cashH.Close)
			// History is a supervision view, sellers never need it
			cash.GET("/history", middleware.RequireRole("admin"), cashH.History)
		}

		v1.POST("/sales", salesH.Create)
		v1.GET("/sales", salesH.List)
		// Refunds reverse money movement, so only admins may issue them
		v1.POST("/sales/:id/refund", middleware.RequireRole("admin"), salesH.Refund)

		purchases := v1.Group("/purchases", middleware.RequireRole("admin"))
		{
			purchases.POST("", purchasesH.Create)
			purchases.GET("", purchasesH.List)
		}

		v1.GET("/products", productsH.List)
		v1.GET("/products/:id", productsH.Get)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
