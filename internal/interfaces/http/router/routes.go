package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/interfaces/http/handler"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// Handlers are the API's request handlers
type Handlers struct {
	Auth      *handler.AuthHandler
	Profile   *handler.ProfileHandler
	Catalog   *handler.CatalogHandler
	Ledger    *handler.LedgerHandler
	Dashboard *handler.DashboardHandler
	Health    *handler.HealthHandler
}

// Options configures the API routes
type Options struct {
	JWT middleware.JWTMiddlewareConfig
	// AuthLimiter throttles the unauthenticated auth endpoints; nil disables it
	AuthLimiter    *middleware.RateLimiter
	SwaggerEnabled bool
}

// RegisterAPI mounts every /api/v1 route plus health and swagger on engine
func RegisterAPI(engine *gin.Engine, h Handlers, opts Options) {
	engine.GET("/health", h.Health.Health)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(opts.SwaggerEnabled),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := middleware.JWTAuthMiddleware(opts.JWT)
	vendorOnly := middleware.RequireRole(identity.RoleVendor)
	supplierOnly := middleware.RequireRole(identity.RoleSupplier)

	public := NewDomainGroup("auth", "/auth")
	if opts.AuthLimiter != nil {
		public.Use(middleware.RateLimit(opts.AuthLimiter))
	}
	public.
		POST("/signup", h.Auth.Signup).
		POST("/login", h.Auth.Login).
		POST("/refresh", h.Auth.Refresh)

	session := NewDomainGroup("session", "/auth").
		Use(requireAuth, middleware.TracingAttributeInjector()).
		POST("/logout", h.Auth.Logout)

	system := NewDomainGroup("system", "").
		GET("/health", h.Health.Health)

	account := NewDomainGroup("account", "").
		Use(requireAuth, middleware.TracingAttributeInjector()).
		GET("/profile", h.Profile.GetProfile).
		PUT("/profile", h.Profile.UpdateProfile).
		GET("/products", h.Catalog.ListProducts)

	orders := NewDomainGroup("orders", "/orders").
		Use(requireAuth, middleware.TracingAttributeInjector(), vendorOnly).
		GET("", h.Ledger.ListOrders).
		POST("", h.Ledger.CreateOrders).
		PUT("/:id/progress", h.Ledger.AdvanceOrder)

	supplier := NewDomainGroup("supplier", "/supplier").
		Use(requireAuth, middleware.TracingAttributeInjector(), supplierOnly).
		GET("/dashboard", h.Dashboard.GetDashboard)
	supplier.Group("inventory", "/inventory").
		GET("", h.Catalog.ListInventory).
		POST("", h.Catalog.AddProduct).
		POST("/attach", h.Catalog.AttachProduct).
		PUT("/:id", h.Catalog.UpdateInventory).
		DELETE("/:id", h.Catalog.DeleteInventory)
	supplier.Group("supplier-orders", "/orders").
		GET("", h.Ledger.ListSharedOrders).
		POST("", h.Ledger.RecordSharedOrder).
		PUT("/:id/progress", h.Ledger.AdvanceSharedOrder)

	NewRouter(engine, WithAPIVersion("v1")).
		Register(system).
		Register(public).
		Register(session).
		Register(account).
		Register(orders).
		Register(supplier).
		Setup()
}
