package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/studyabroad-api/internal/handler"
	"github.com/noah-isme/studyabroad-api/internal/middleware"
	"github.com/noah-isme/studyabroad-api/internal/models"
	"github.com/noah-isme/studyabroad-api/pkg/config"
	"github.com/noah-isme/studyabroad-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/studyabroad-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/studyabroad-api/pkg/middleware/requestid"
)

func newRouter(cfg *config.Config, logr *zap.Logger, deps routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.metrics, "/metrics", "/health", "/ready"))
	r.Use(middleware.WithResponseMeta())

	health := handler.NewMetricsHandler(deps.metrics, deps.checks)
	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	r.GET("/metrics", health.Prometheus)

	if cfg.EnableDocs && !cfg.IsProduction() {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	requireAuth := middleware.JWT(deps.auth)
	editors := middleware.RequireRoles(models.RoleAdmin, models.RolePublisher)
	admins := middleware.RequireRoles(models.RoleAdmin)
	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(deps.users, logr, action, resource)
	}

	authHandler := handler.NewAuthHandler(deps.auth)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", requireAuth, authHandler.Logout)
	auth.GET("/me", requireAuth, authHandler.Me)

	collegeHandler := handler.NewCollegeHandler(deps.colleges, deps.relations)
	collegeCRUD := handler.NewContentHandler[models.College, models.CollegeRequest](deps.colleges, "college")
	colleges := api.Group("/colleges")
	colleges.GET("", collegeHandler.List)
	colleges.GET("/slug/:slug", collegeCRUD.GetBySlug)
	colleges.GET("/:id", collegeCRUD.Get)
	colleges.GET("/:id/courses", collegeHandler.Courses)
	colleges.POST("", requireAuth, editors, audit(models.AuditActionContentCreate, "colleges"), collegeCRUD.Create)
	colleges.PUT("/:id", requireAuth, editors, audit(models.AuditActionContentUpdate, "colleges"), collegeCRUD.Update)
	colleges.DELETE("/:id", requireAuth, admins, audit(models.AuditActionContentDelete, "colleges"), collegeCRUD.Delete)

	api.POST("/relations/college-courses", requireAuth, editors, audit(models.AuditActionContentCreate, "college_courses"), collegeHandler.LinkCourse)

	registerContent(api.Group("/courses"), handler.NewContentHandler[models.Course, models.CourseRequest](deps.courses, "course"), "courses", true, requireAuth, editors, admins, audit)
	registerContent(api.Group("/blogs"), handler.NewContentHandler[models.Blog, models.BlogRequest](deps.blogs, "blog"), "blogs", true, requireAuth, editors, admins, audit)
	registerContent(api.Group("/exams"), handler.NewContentHandler[models.Exam, models.ExamRequest](deps.exams, "exam"), "exams", false, requireAuth, editors, admins, audit)
	registerContent(api.Group("/universities"), handler.NewContentHandler[models.University, models.UniversityRequest](deps.universities, "university"), "universities", false, requireAuth, editors, admins, audit)

	browseHandler := handler.NewBrowseHandler(deps.browse, deps.universities)
	api.GET("/browse/:type", browseHandler.Browse)
	api.GET("/countries", browseHandler.Countries)

	leadHandler := handler.NewLeadHandler(deps.leads, deps.exports)
	limiter := middleware.NewKeyedLimiter(cfg.Leads.RatePerMinute, cfg.Leads.RateBurst)
	api.POST("/contact", middleware.RateLimit(limiter, func(*gin.Context) { deps.leads.RecordLimited() }), leadHandler.Contact)
	api.GET("/leads", requireAuth, admins, leadHandler.List)
	api.GET("/leads/export", requireAuth, admins, audit(models.AuditActionLeadExport, "leads"), leadHandler.Export)

	return r
}

type crudRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	GetBySlug(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func registerContent(g *gin.RouterGroup, h crudRoutes, resource string, bySlug bool, requireAuth, editors, admins gin.HandlerFunc, audit func(action, resource string) gin.HandlerFunc) {
	g.GET("", h.List)
	if bySlug {
		g.GET("/slug/:slug", h.GetBySlug)
	}
	g.GET("/:id", h.Get)
	g.POST("", requireAuth, editors, audit(models.AuditActionContentCreate, resource), h.Create)
	g.PUT("/:id", requireAuth, editors, audit(models.AuditActionContentUpdate, resource), h.Update)
	g.DELETE("/:id", requireAuth, admins, audit(models.AuditActionContentDelete, resource), h.Delete)
}
