package routes

import (
	"net/http"

	adminapi "agency-site/internal/api/admin"
	contactapi "agency-site/internal/api/contact"
	mediaapi "agency-site/internal/api/media"
	projectsapi "agency-site/internal/api/projects"
	"agency-site/internal/app/http/middleware"
	"agency-site/internal/notify"
	"agency-site/internal/ratelimit"
	"agency-site/internal/store"
	"agency-site/internal/uploads"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Store    store.Store
	Uploads  *uploads.Handler
	Notifier notify.Notifier
	// Limiter throttles the public contact form; nil disables throttling.
	Limiter ratelimit.Limiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	projects := projectsapi.New(d.Store)
	media := mediaapi.New(d.Store, d.Uploads)
	contact := contactapi.New(d.Store, d.Notifier)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Static(uploads.DefaultPublicPrefix, d.Uploads.Dir)

	api := r.Group("/api")

	// Public
	api.GET("/projects", projects.List)
	api.GET("/projects/:category", projects.ListByCategory)
	api.GET("/media", media.List)
	api.GET("/media/:category", media.ListByCategory)
	api.POST("/admin/login", adminapi.Login)

	contactChain := []gin.HandlerFunc{}
	if d.Limiter != nil {
		contactChain = append(contactChain, ratelimit.Middleware(d.Limiter, "contact"))
	}
	contactChain = append(contactChain, middleware.SanitizeAndCleanInputMiddleware(), contact.Create)
	api.POST("/contact", contactChain...)

	// Admin
	admin := api.Group("/")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(adminapi.RoleAdmin))
	admin.POST("/projects", projects.Create)
	admin.PATCH("/projects/:id", projects.Update)
	admin.DELETE("/projects/:id", projects.Delete)
	admin.POST("/projects/:projectId/reviews", projects.CreateReview)
	admin.POST("/media/upload", media.Upload)
	admin.DELETE("/media/:id", media.Delete)
}
