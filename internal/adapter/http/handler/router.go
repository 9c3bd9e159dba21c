package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"credit-app/internal/adapter/http/middleware"
	"credit-app/internal/core/dispatch"
	"credit-app/internal/core/domain"
	"credit-app/internal/core/ports"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Bus            *dispatch.Bus
	TokenSvc       ports.TokenService
	RateLimiter    ports.RateLimiter // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	registerDocs(r)

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimiter == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Logger)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	reviewer := middleware.RequireRole(domain.RoleAnalyst, domain.RoleAdmin)
	admin := middleware.RequireRole(domain.RoleAdmin)

	v1 := r.Group("/api/v1")

	authHandler := NewAuthHandler(deps.Bus)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
		auth.POST("/register-analyst", jwtAuth, admin, rl("api"), authHandler.RegisterAnalyst)
		auth.GET("/me", jwtAuth, rl("api"), authHandler.Me)
	}

	crHandler := NewCreditRequestHandler(deps.Bus)
	credit := v1.Group("/credit-requests", jwtAuth, rl("api"))
	{
		credit.POST("", crHandler.Create)
		credit.GET("/mine", crHandler.ListMine)
		credit.GET("/export", reviewer, rl("export"), crHandler.Export)
		credit.GET("", reviewer, crHandler.List)
		credit.GET("/:id", crHandler.Get)
		credit.PUT("/:id/status", reviewer, crHandler.UpdateStatus)
		credit.DELETE("/:id", crHandler.Delete)
	}

	auditHandler := NewAuditHandler(deps.Bus)
	v1.GET("/audit-logs", jwtAuth, reviewer, rl("api"), auditHandler.List)

	return r
}
