package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elect10/sesac-hackathon/internal/config"
	"github.com/elect10/sesac-hackathon/internal/controller"
	"github.com/elect10/sesac-hackathon/internal/repository"
	"github.com/elect10/sesac-hackathon/internal/service"
	"github.com/elect10/sesac-hackathon/internal/util"
	"github.com/elect10/sesac-hackathon/pkg/database"
	"github.com/elect10/sesac-hackathon/pkg/logger"
	"github.com/elect10/sesac-hackathon/pkg/monitoring"
	"github.com/elect10/sesac-hackathon/pkg/security"
	"github.com/elect10/sesac-hackathon/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user           *repository.UserRepository
	problem        *repository.ProblemRepository
	solveHistory   *repository.SolveHistoryRepository
	achievement    *repository.AchievementRepository
	parentFeedback *repository.ParentFeedbackRepository
}

type services struct {
	auth            *service.AuthService
	user            *service.UserService
	storage         *service.StorageService
	achievement     *service.AchievementService
	personalization *service.PersonalizationService
	ai              *service.AIService
	chat            *service.ChatService
	parentFeedback  *service.ParentFeedbackService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	chat        *controller.ChatController
	achievement *controller.AchievementController
	feedback    *controller.FeedbackController
	health      *controller.HealthController
}

// RegisterConfigCallback 설정 핫리로드 시 호출될 콜백 등록
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig configwatcher가 새 설정을 읽으면 콜백을 순서대로 실행한다
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("설정 리로드 적용 완료")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		problem:        repository.NewProblemRepository(db),
		solveHistory:   repository.NewSolveHistoryRepository(db),
		achievement:    repository.NewAchievementRepository(db),
		parentFeedback: repository.NewParentFeedbackRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.achievement = service.NewAchievementService(repos.achievement)
	s.personalization = service.NewPersonalizationService(repos.solveHistory, repos.parentFeedback, s.achievement)
	s.ai = service.NewAIService(cfg.AI)
	s.chat = service.NewChatService(repos.user, repos.problem, repos.solveHistory, s.personalization, s.ai, s.storage, rdb)
	s.parentFeedback = service.NewParentFeedbackService(repos.parentFeedback)

	// AI 서버 주소는 재시작 없이 바뀔 수 있다
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.ai.UpdateConfig(newCfg.AI)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.user),
		user:        controller.NewUserController(s.user),
		chat:        controller.NewChatController(s.chat),
		achievement: controller.NewAchievementController(s.achievement),
		feedback:    controller.NewFeedbackController(s.parentFeedback),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("sesac-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 종료 시그널을 기다렸다가 5초 타임아웃으로 우아하게 종료
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
