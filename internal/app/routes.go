package app

import (
	"context"
	"net/http"
	"time"

	"Noteboard/internal/auth"
	"Noteboard/internal/config"
	"Noteboard/internal/dto"
	"Noteboard/internal/handlers"
	"Noteboard/internal/middleware"
	"Noteboard/internal/repo"
	"Noteboard/internal/service"
	"Noteboard/internal/validation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

const apiBase = "/v1"

// Deps are the collaborators the router is wired with.
type Deps struct {
	Stores      repo.Stores
	Revocations auth.Revocations
	Log         *logrus.Logger
	// Ping reports backend health for /health. Nil means always healthy.
	Ping func(ctx context.Context) error
}

// NewRouter builds the engine with global middleware and every route.
func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validation.Register(); err != nil {
		deps.Log.WithError(err).Fatal("register validators")
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		middleware.Logger(c, deps.Log).WithField("panic", recovered).Error("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: http.StatusText(http.StatusInternalServerError),
		})
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", "Content-Type", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}))

	metrics := middleware.NewMetrics("noteboard")
	r.Use(metrics.Instrument())
	if cfg.HTTP.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst, deps.Log)
		r.Use(limiter.Handler())
	}

	Setup(r, cfg, deps, metrics)
	return r
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, deps Deps, metrics *middleware.Metrics) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg, deps.Ping))
	r.GET("/version", versionHandler(cfg))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	log := deps.Log
	api := r.Group(apiBase)

	tokens := auth.NewTokens(cfg.JWT.Secret, cfg.JWT.AccessTTL.Duration(), cfg.JWT.Issuer)
	requireAuth := auth.RequireAuth(tokens, deps.Revocations, log)

	userSvc := service.NewUserService(deps.Stores.Users)
	registerAuthRoutes(api, requireAuth, handlers.NewAuthHandler(userSvc, tokens, deps.Revocations, log))

	protected := api.Group("", requireAuth)

	registerUserRoutes(protected, handlers.NewUserHandler(userSvc, log))

	todoSvc := service.NewTodoService(deps.Stores.Todos)
	registerTodoRoutes(protected, handlers.NewTodoHandler(todoSvc, log))

	postSvc := service.NewPostService(deps.Stores.Posts)
	registerPostRoutes(protected, handlers.NewPostHandler(postSvc, log))

	commentSvc := service.NewCommentService(deps.Stores.Comments, postSvc)
	registerCommentRoutes(protected, handlers.NewCommentHandler(commentSvc, log))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Noteboard API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"openapi": "/swagger-doc.json",
			"health":  "/health",
			"metrics": "/metrics",
			"api":     apiBase,
		})
	}
}

func healthHandler(cfg config.Config, ping func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "env": cfg.App.Env, "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env, "storage": cfg.Storage.Driver})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: http.StatusInternalServerError, Message: err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc, h *handlers.AuthHandler) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", requireAuth, h.Logout)
}

func registerUserRoutes(api *gin.RouterGroup, h *handlers.UserHandler) {
	api.POST("/users", h.Create)
	api.GET("/users", h.List)
	api.GET("/users/:userId", h.GetByID)
	api.PATCH("/users/:userId", h.Update)
	api.DELETE("/users/:userId", h.Delete)
}

func registerTodoRoutes(api *gin.RouterGroup, h *handlers.TodoHandler) {
	api.POST("/todo", h.Create)
	api.POST("/todo/getTodo", h.List)
	api.GET("/todo/getTodo/:todoId", h.GetByID)
	api.POST("/todo/update/:todoId", h.Update)
	api.POST("/todo/markAsCompleted/:todoId", h.MarkAsCompleted)
	api.POST("/todo/delete/:todoId", h.Delete)
}

func registerPostRoutes(api *gin.RouterGroup, h *handlers.PostHandler) {
	api.POST("/post", h.Create)
	api.POST("/post/getPost", h.List)
	api.GET("/post/getPost/:postId", h.GetByID)
	api.POST("/post/update/:postId", h.Update)
	api.POST("/post/delete/:postId", h.Delete)
}

func registerCommentRoutes(api *gin.RouterGroup, h *handlers.CommentHandler) {
	api.POST("/comment", h.Create)
	api.GET("/comment/getComment/:postId", h.ListByPost)
	api.POST("/comment/update/:commentId", h.Update)
	api.POST("/comment/delete/:commentId", h.Delete)
}
