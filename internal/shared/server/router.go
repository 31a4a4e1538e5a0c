package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"resume-builder/internal/generatedresumes"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/users"
)

const (
	rateGroupAuth   = "AUTH"
	rateGroupRender = "RENDER"

	generatePath = "/api/resume/generate"
)

// RouterDeps are the handlers and shared clients the router mounts.
type RouterDeps struct {
	Config           config.Config
	Tokens           middleware.TokenVerifier
	Health           *health.Service
	UserHandler      *users.Handler
	ResumeHandler    *resumes.Handler
	GeneratedHandler *generatedresumes.Handler
	Redis            *goredis.Client
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	var limiter middleware.Limiter
	if deps.Redis != nil {
		limiter = middleware.NewRedisLimiter(deps.Redis, "")
	} else {
		limiter = middleware.NewRateLimiter(nil)
	}

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		status, ok := deps.Health.Status(c.Request.Context())
		if !ok {
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		respond.OK(c, status)
	})
	api.GET("/metrics", metrics.Handler())

	public := api.Group("")
	public.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules:        map[string]middleware.RateLimitRule{rateGroupAuth: middleware.PerMinute(deps.Config.RateLimitAuthPerMin)},
		DefaultGroup: rateGroupAuth,
		Limiter:      limiter,
	}))
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(public)
	}

	protected := api.Group("")
	protected.Use(
		middleware.Auth(deps.Tokens),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{rateGroupRender: middleware.PerMinute(deps.Config.RateLimitRenderPerMin)},
			GroupFor: func(c *gin.Context) string {
				if c.FullPath() == generatePath {
					return rateGroupRender
				}
				return ""
			},
			Limiter: limiter,
		}),
	)
	registerMeRoutes(protected)
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(protected)
	}
	if deps.GeneratedHandler != nil {
		deps.GeneratedHandler.RegisterRoutes(protected)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
