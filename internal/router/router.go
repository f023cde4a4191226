package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/ExamPortal/config"
	adminctrl "github.com/lshigami/ExamPortal/internal/controller/admin"
	userctrl "github.com/lshigami/ExamPortal/internal/controller/user"
	"github.com/lshigami/ExamPortal/internal/middleware"
	"github.com/lshigami/ExamPortal/internal/monitoring"
	"github.com/lshigami/ExamPortal/internal/tracing"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewGinEngine builds the engine with the cross-cutting middleware.
func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	if err := middleware.RegisterValidators(); err != nil {
		log.Error().Err(err).Msg("Failed to register custom validators")
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ZerologLogger())
	r.Use(gin.Recovery())
	r.Use(tracing.GinMiddleware())
	r.Use(monitoring.MetricsMiddleware())

	origins := cfg.Server.CorsAllowedOrigins
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", monitoring.PrometheusHandler())
	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// Controllers groups everything RegisterRoutes mounts.
type Controllers struct {
	StudentExams    *userctrl.ExamController
	StudentAttempts *userctrl.AttemptController
	AdminExams      *adminctrl.ExamController
	AdminResults    *adminctrl.ResultController
}

// RegisterRoutes mounts the API. stop ends the rate limiter's janitor.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, c Controllers, stop <-chan struct{}) {
	auth := middleware.Auth(cfg.JWT.Secret)
	limiter := middleware.RateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window, stop)

	studentAPI := r.Group("/api/v1", auth, middleware.RequireRole(middleware.RoleStudent), limiter)
	{
		studentAPI.GET("/exams", c.StudentExams.ListExams)
		studentAPI.POST("/exams/:exam_id/attempts", c.StudentExams.StartAttempt)

		attempts := studentAPI.Group("/attempts/:attempt_id")
		attempts.GET("", c.StudentAttempts.GetAttempt)
		attempts.PUT("/responses/:question_id", c.StudentAttempts.SaveResponse)
		attempts.POST("/submit", c.StudentAttempts.SubmitAttempt)
		attempts.GET("/result", c.StudentAttempts.GetResult)
		attempts.GET("/answer-key", c.StudentAttempts.GetAnswerKey)
	}

	adminAPI := r.Group("/api/v1/admin", auth, middleware.RequireRole(middleware.RoleAdmin))
	{
		exams := adminAPI.Group("/exams")
		exams.POST("", c.AdminExams.CreateExam)
		exams.GET("/:exam_id", c.AdminExams.GetExam)
		exams.POST("/:exam_id/questions", c.AdminExams.AddQuestion)
		exams.PATCH("/:exam_id/status", c.AdminExams.SetStatus)
		exams.PATCH("/:exam_id/answer-key", c.AdminExams.SetAnswerKey)
		exams.POST("/:exam_id/assignments", c.AdminExams.AssignStudents)
		exams.GET("/:exam_id/results", c.AdminResults.ListResults)
		exams.POST("/:exam_id/results/publish", c.AdminResults.PublishResults)
		exams.DELETE("/:exam_id/results/publish", c.AdminResults.UnpublishResults)
	}
}
