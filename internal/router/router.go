package router

import (
	"github.com/gin-gonic/gin"

	"taxpadi/internal/domain"
	"taxpadi/internal/handler"
	"taxpadi/internal/middleware"
	"taxpadi/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	taxH *handler.TaxHandler,
	calcH *handler.CalculationHandler,
	userH *handler.UserHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)
	auth.GET("/verify-email", authH.VerifyEmail)
	auth.POST("/forgot-password", authH.ForgotPassword)
	auth.POST("/reset-password", authH.ResetPassword)

	// Public tax computation routes - no account needed to calculate
	taxes := v1.Group("/tax")
	taxes.GET("/rates", taxH.Rates)
	taxes.POST("/pit", taxH.CalculatePIT)
	taxes.POST("/cit", taxH.CalculateCIT)
	taxes.POST("/cgt", taxH.CalculateCGT)
	taxes.POST("/vat", taxH.CalculateVAT)
	taxes.POST("/vat/business", taxH.CalculateBusinessVAT)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/me", userH.Me)
	protected.PUT("/me", userH.UpdateMe)

	// Saved calculations - persistence additionally requires a verified email
	calcs := protected.Group("/calculations")
	calcs.Use(middleware.RequireVerifiedEmail())
	calcs.POST("", calcH.Save)
	calcs.GET("", calcH.List)
	calcs.GET("/export", calcH.Export)
	calcs.GET("/stats", calcH.Stats)
	calcs.GET("/:id", calcH.Get)
	calcs.POST("/:id/recompute", calcH.Recompute)
	calcs.DELETE("/:id", calcH.Delete)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/users", userH.ListUsers)
	admin.GET("/stats", userH.GlobalStats)

	return r
}
