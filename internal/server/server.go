// Package server wires handlers, middleware and the HTTP server together.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/yukikurage/resource-management-api/internal/auth"
	"github.com/yukikurage/resource-management-api/internal/config"
	"github.com/yukikurage/resource-management-api/internal/constants"
	"github.com/yukikurage/resource-management-api/internal/events"
	"github.com/yukikurage/resource-management-api/internal/handlers"
	"github.com/yukikurage/resource-management-api/internal/logger"
	"github.com/yukikurage/resource-management-api/internal/metrics"
	"github.com/yukikurage/resource-management-api/internal/middleware"
	"github.com/yukikurage/resource-management-api/internal/models"
	"github.com/yukikurage/resource-management-api/internal/repository"
	"github.com/yukikurage/resource-management-api/internal/response"
	"github.com/yukikurage/resource-management-api/internal/services"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Dependencies are the long-lived collaborators the routes are built from.
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	Store     *repository.Store
	Tokens    *auth.TokenService
	Publisher events.Publisher
	// Metrics is optional; nil disables /metrics and request metrics.
	Metrics *metrics.Registry
	// Ping reports store health on /health when set.
	Ping func(ctx context.Context) error
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(deps Dependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.RequestID(), logger.GinMiddleware(log), logger.Recovery(log))

	var observer services.EventObserver
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
		observer = deps.Metrics
	}

	authHandler := handlers.NewAuthHandler(services.NewAuthService(deps.Store.Users, deps.Tokens))
	engineerHandler := handlers.NewEngineerHandler(services.NewEngineerService(deps.Store.Users, deps.Store.Assignments))
	projectHandler := handlers.NewProjectHandler(services.NewProjectService(deps.Store.Projects))
	assignmentHandler := handlers.NewAssignmentHandler(
		services.NewAssignmentService(deps.Store.Assignments, deps.Publisher, observer, log),
	)

	requireAuth := middleware.RequireAuth(deps.Tokens)
	managerOnly := func(c *gin.Context) { c.Next() }
	if deps.Config != nil && deps.Config.EnforceManagerRole {
		managerOnly = middleware.RequireRole(deps.Store.Users, models.RoleManager)
	}

	r.GET("/health", healthHandler(deps.Ping))

	api := r.Group(constants.APIPrefix)
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.GET("/profile", requireAuth, authHandler.GetProfile)
			authRoutes.PUT("/profile", requireAuth, authHandler.UpdateProfile)
		}

		engineers := api.Group("/engineers")
		engineers.Use(requireAuth)
		{
			engineers.GET("", engineerHandler.ListEngineers)
			engineers.GET("/:id/capacity", engineerHandler.GetCapacity)
		}

		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", managerOnly, projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
		}

		assignments := api.Group("/assignments")
		assignments.Use(requireAuth)
		{
			assignments.GET("", assignmentHandler.ListAssignments)
			assignments.POST("", managerOnly, assignmentHandler.CreateAssignment)
			assignments.GET("/:id", assignmentHandler.GetAssignment)
			assignments.PATCH("/:id", managerOnly, assignmentHandler.UpdateAssignment)
			assignments.DELETE("/:id", managerOnly, assignmentHandler.DeleteAssignment)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.JSON(c, http.StatusNotFound, "Route not found", nil)
	})

	return r
}

// NewHandler wraps the router with CORS for the configured origins.
func NewHandler(deps Dependencies) http.Handler {
	var origins []string
	if deps.Config != nil {
		origins = deps.Config.CORSAllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", constants.RequestIDHeader},
		ExposedHeaders:   []string{constants.RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(NewRouter(deps))
}

// New creates the HTTP server with the configured timeouts.
func New(deps Dependencies) *http.Server {
	cfg := deps.Config
	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      NewHandler(deps),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  2 * cfg.HTTPReadTimeout,
	}
}

func healthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
			defer cancel()
			if err := ping(ctx); err != nil {
				logger.FromGin(c).Warn("Health check failed", zap.Error(err))
				response.JSON(c, http.StatusServiceUnavailable, "Database unavailable", nil)
				return
			}
		}
		response.OK(c, "Resource Management API is running", nil)
	}
}
