package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/uni-advisory-api/api/swagger"
	"github.com/noah-isme/uni-advisory-api/internal/handler"
	internalmiddleware "github.com/noah-isme/uni-advisory-api/internal/middleware"
	"github.com/noah-isme/uni-advisory-api/internal/repository"
	"github.com/noah-isme/uni-advisory-api/internal/service"
	"github.com/noah-isme/uni-advisory-api/pkg/cache"
	"github.com/noah-isme/uni-advisory-api/pkg/config"
	"github.com/noah-isme/uni-advisory-api/pkg/database"
	"github.com/noah-isme/uni-advisory-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/uni-advisory-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/uni-advisory-api/pkg/middleware/requestid"
)

// @title University Advisory API
// @version 1.0.0
// @description Course recommendation and academic policy engine
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}

	validate := validator.New()

	courseRepo := repository.NewCourseRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	trainingRepo := repository.NewTrainingRepository(db)
	advisorRepo := repository.NewAdvisorRepository(db)
	windowRepo := repository.NewWindowRepository(redisClient)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(advisorRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     "uni-advisory-api",
	})
	windowSvc := service.NewWindowService(windowRepo, validate, logr)
	recommendationSvc := service.NewRecommendationService(courseRepo, studentRepo, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, courseRepo, studentRepo, windowSvc, cacheRepo, validate, logr)
	graduationSvc := service.NewGraduationService(courseRepo, studentRepo, logr)
	evaluationSvc := service.NewEvaluationService(studentRepo, trainingRepo, cacheRepo, metricsSvc, cfg.Advisory, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	recommendationHandler := handler.NewRecommendationHandler(recommendationSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	windowHandler := handler.NewWindowHandler(windowSvc)
	graduationHandler := handler.NewGraduationHandler(graduationSvc)
	evaluationHandler := handler.NewEvaluationHandler(evaluationSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "postgres": err.Error()})
			return
		}
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)

		api.GET("/students/:id/recommendations", recommendationHandler.Get)
		api.GET("/students/:id/graduation", graduationHandler.Get)
		api.GET("/students/:id/graduation/report", graduationHandler.Report)
		api.GET("/students/:id/evaluation", evaluationHandler.Get)
		api.POST("/students/:id/enrollments", enrollmentHandler.Add)
		api.DELETE("/students/:id/enrollments", enrollmentHandler.Remove)

		api.GET("/enrollment-window/status", windowHandler.Status)

		admin := api.Group("", internalmiddleware.JWT(authSvc))
		{
			admin.POST("/enrollment-window", windowHandler.Set)
			admin.GET("/enrollment-window", windowHandler.Get)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
