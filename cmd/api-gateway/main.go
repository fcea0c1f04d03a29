package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/studyabroad-api/api/swagger"
	"github.com/noah-isme/studyabroad-api/internal/handler"
	"github.com/noah-isme/studyabroad-api/internal/middleware"
	"github.com/noah-isme/studyabroad-api/internal/models"
	"github.com/noah-isme/studyabroad-api/internal/repository"
	"github.com/noah-isme/studyabroad-api/internal/service"
	"github.com/noah-isme/studyabroad-api/pkg/cache"
	"github.com/noah-isme/studyabroad-api/pkg/config"
	"github.com/noah-isme/studyabroad-api/pkg/database"
	"github.com/noah-isme/studyabroad-api/pkg/jobs"
	"github.com/noah-isme/studyabroad-api/pkg/listing"
	"github.com/noah-isme/studyabroad-api/pkg/logger"
)

// @title Study Abroad API
// @version 1.0.0
// @description Catalog, browse and consultation API for the study-abroad consultancy
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	var redisClient *redis.Client
	if client, err := cache.NewRedis(ctx, cfg.Redis); err != nil {
		logr.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
	} else {
		redisClient = client
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Catalog.CacheTTL, logr, redisClient != nil)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	collegeRepo := repository.NewCollegeRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	examRepo := repository.NewExamRepository(db)
	universityRepo := repository.NewUniversityRepository(db)
	relationRepo := repository.NewRelationRepository(db)
	leadRepo := repository.NewLeadRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "studyabroad-api",
	})
	colleges := service.NewCollegeService(collegeRepo, validate, logr, cacheSvc)
	courses := service.NewCourseService(courseRepo, validate, logr, cacheSvc)
	blogs := service.NewBlogService(blogRepo, validate, logr, cacheSvc)
	exams := service.NewExamService(examRepo, validate, logr, cacheSvc)
	universities := service.NewUniversityService(universityRepo, validate, logr, cacheSvc)
	relations := service.NewRelationService(relationRepo, collegeRepo, courseRepo, validate, logr)
	browse := service.NewBrowseService(service.BrowseSources{
		Colleges:     listing.FetcherFunc[models.College](colleges.ListActive),
		Courses:      listing.FetcherFunc[models.Course](courses.ListActive),
		Blogs:        listing.FetcherFunc[models.Blog](blogs.ListActive),
		Universities: listing.FetcherFunc[models.University](universities.ListActive),
		Exams:        listing.FetcherFunc[models.Exam](exams.ListActive),
	}, cacheSvc, metrics, cfg.Catalog.PageSize, logr)

	notifier := service.NewLogNotifier(logr.Named("notifier"), cfg.Leads.NotifyEmail)
	notifications := jobs.NewQueue("lead-notifications", service.NewLeadNotificationHandler(notifier, metrics), jobs.QueueConfig{
		Workers:    cfg.Leads.Workers,
		MaxRetries: cfg.Leads.Retries,
		RetryDelay: 2 * time.Second,
		Logger:     logr,
	})
	notifications.Start(ctx)
	leads := service.NewLeadService(leadRepo, notifications, validate, metrics, logr)
	exports := service.NewExportService(leadRepo, cfg.Leads.ExportMaxRows, logr)

	checks := map[string]handler.Pinger{"postgres": db}
	if redisClient != nil {
		checks["redis"] = handler.PingFunc(cacheRepo.Ping)
	}

	router := newRouter(cfg, logr, routeDeps{
		auth:         authSvc,
		users:        userRepo,
		metrics:      metrics,
		checks:       checks,
		colleges:     colleges,
		courses:      courses,
		blogs:        blogs,
		exams:        exams,
		universities: universities,
		relations:    relations,
		browse:       browse,
		leads:        leads,
		exports:      exports,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	notifications.Stop()
}

type routeDeps struct {
	auth         *service.AuthService
	users        middleware.AuditWriter
	metrics      *service.MetricsService
	checks       map[string]handler.Pinger
	colleges     *service.CollegeService
	courses      *service.CourseService
	blogs        *service.BlogService
	exams        *service.ExamService
	universities *service.UniversityService
	relations    *service.RelationService
	browse       *service.BrowseService
	leads        *service.LeadService
	exports      *service.ExportService
}
