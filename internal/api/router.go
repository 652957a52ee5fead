package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trackhub/project-manager/internal/api/handler"
	"github.com/trackhub/project-manager/internal/api/middleware"
	"github.com/trackhub/project-manager/internal/core/domain"
	"github.com/trackhub/project-manager/internal/core/ports"
	"github.com/trackhub/project-manager/internal/core/token"
)

// Dependencies carries everything the router needs wired in. Services
// are constructed in main so the router stays free of infrastructure
// concerns beyond the health probes.
type Dependencies struct {
	Users    ports.UserService
	Projects ports.ProjectService
	Tasks    ports.TaskService

	// UserRepo and Codec back the principal-resolving middleware.
	UserRepo ports.UserRepository
	Codec    *token.Codec

	Mongo  *mongo.Database
	Redis  *redis.Client
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("projectmanager"))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authMiddleware := middleware.Auth(deps.Codec, deps.UserRepo)
	apiGroup := e.Group("/api")

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Users)
	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/signup", authHandler.SignUp)
	authGroup.GET("/signup/confirm", authHandler.Confirm)
	authGroup.POST("/signin", authHandler.SignIn)

	// --- User administration (admin only) ---
	userHandler := handler.NewUserHandler(deps.Users)
	userGroup := apiGroup.Group("/users", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	userGroup.GET("", userHandler.List)
	userGroup.GET("/:id", userHandler.Get)
	userGroup.DELETE("/:id", userHandler.Delete)

	// --- Projects and nested tasks ---
	projectHandler := handler.NewProjectHandler(deps.Projects)
	projectGroup := apiGroup.Group("/projects", authMiddleware)
	projectGroup.POST("", projectHandler.Create)
	projectGroup.GET("", projectHandler.List)
	projectGroup.GET("/:id", projectHandler.Get)
	projectGroup.PUT("/:id", projectHandler.Update)
	projectGroup.DELETE("/:id", projectHandler.Delete)

	taskHandler := handler.NewTaskHandler(deps.Tasks)
	taskGroup := projectGroup.Group("/:projectID/tasks")
	taskGroup.POST("", taskHandler.Create)
	taskGroup.GET("", taskHandler.List)
	taskGroup.GET("/:taskID", taskHandler.Get)
	taskGroup.PUT("/:taskID", taskHandler.Update)
	taskGroup.DELETE("/:taskID", taskHandler.Delete)
	taskGroup.POST("/:taskID/complete", taskHandler.Complete)

	return e
}
