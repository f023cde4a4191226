package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/ExamPortal/config"
	"github.com/lshigami/ExamPortal/database"
	_ "github.com/lshigami/ExamPortal/docs" // Swagger docs - auto-generated
	adminctrl "github.com/lshigami/ExamPortal/internal/controller/admin"
	userctrl "github.com/lshigami/ExamPortal/internal/controller/user"
	"github.com/lshigami/ExamPortal/internal/logger"
	"github.com/lshigami/ExamPortal/internal/monitoring"
	"github.com/lshigami/ExamPortal/internal/repository"
	"github.com/lshigami/ExamPortal/internal/router"
	"github.com/lshigami/ExamPortal/internal/service"
	"github.com/lshigami/ExamPortal/internal/tracing"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Exam Portal Attempt API
// @version 1.0
// @description Timed computer-based test engine: attempts, responses, scoring and result publication.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	monitoring.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			database.NewRedisClient,
			router.NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewExamRepository,
			func(db *gorm.DB, rdb *redis.Client, cfg *config.Config) repository.QuestionRepository {
				return repository.NewCachedQuestionRepository(repository.NewQuestionRepository(db), rdb, cfg.Redis.QuestionCacheTTL)
			},
			repository.NewAssignmentRepository,
			repository.NewAttemptRepository,
			repository.NewResponseRepository,
		),

		// Services
		fx.Provide(
			service.NewAttemptService,
			service.NewResultService,
			service.NewAdminExamService,
			service.NewExamService,
			service.NewExpirySweeper,
		),

		// Controllers
		fx.Provide(
			userctrl.NewExamController,
			userctrl.NewAttemptController,
			adminctrl.NewExamController,
			adminctrl.NewResultController,
		),

		fx.Invoke(logger.Configure),
		fx.Invoke(tracing.Init),
		fx.Invoke(database.AutoMigrate),
		fx.Invoke(service.RegisterExpirySweeper),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Application stop failed")
	}
}

// RegisterRoutesAndStartServer mounts the API and manages the HTTP server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	engine *gin.Engine,
	cfg *config.Config,
	studentExams *userctrl.ExamController,
	studentAttempts *userctrl.AttemptController,
	adminExams *adminctrl.ExamController,
	adminResults *adminctrl.ResultController,
) {
	stop := make(chan struct{})
	router.RegisterRoutes(engine, cfg, router.Controllers{
		StudentExams:    studentExams,
		StudentAttempts: studentAttempts,
		AdminExams:      adminExams,
		AdminResults:    adminResults,
	}, stop)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam portal API starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			close(stop)
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
