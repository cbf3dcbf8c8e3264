package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"portfolio/internal/handler"
	"portfolio/internal/middleware"
	"portfolio/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Health     *handler.HealthHandler
	Projects   *handler.ProjectHandler
	Categories *handler.CategoryHandler
	Posts      *handler.PostHandler
	Images     *handler.ImageHandler
	Translate  *handler.TranslateHandler
	Export     *handler.ExportHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Public site content
	v1.GET("/projects", h.Projects.List)
	v1.GET("/projects/:slug", h.Projects.GetBySlug)
	v1.GET("/categories", h.Categories.List)
	v1.GET("/categories/:slug", h.Categories.GetBySlug)
	v1.GET("/posts", h.Posts.List)
	v1.GET("/posts/:slug", h.Posts.GetBySlug)

	// Admin routes - require a valid admin JWT
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireAdmin())
	admin.GET("/me", h.Auth.Me)

	projects := admin.Group("/projects")
	projects.GET("", h.Projects.AdminList)
	projects.POST("", h.Projects.Create)
	projects.GET("/:id", h.Projects.AdminGet)
	projects.PUT("/:id", h.Projects.Update)
	projects.DELETE("/:id", h.Projects.Delete)
	projects.POST("/:id/translate", h.Projects.Retranslate)

	categories := admin.Group("/categories")
	categories.POST("", h.Categories.Create)
	categories.PUT("/:id", h.Categories.Update)
	categories.DELETE("/:id", h.Categories.Delete)

	posts := admin.Group("/posts")
	posts.GET("", h.Posts.AdminList)
	posts.POST("", h.Posts.Create)
	posts.GET("/:id", h.Posts.AdminGet)
	posts.PUT("/:id", h.Posts.Update)
	posts.DELETE("/:id", h.Posts.Delete)
	posts.POST("/:id/translate", h.Posts.Retranslate)

	admin.POST("/images", h.Images.Upload)
	admin.DELETE("/images", h.Images.Delete)

	admin.POST("/translate", h.Translate.Translate)

	admin.GET("/export", h.Export.Export)
	admin.POST("/import", h.Export.Import)
	admin.POST("/backup", h.Export.Backup)

	return r
}
