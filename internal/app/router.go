package app

import (
	"github.com/elect10/sesac-hackathon/docs"
	"github.com/elect10/sesac-hackathon/internal/config"
	"github.com/elect10/sesac-hackathon/internal/middleware"
	"github.com/elect10/sesac-hackathon/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 공개 라우트
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 인증 필요 라우트
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.POST("/user/avatar/upload", c.user.UploadAvatar)

		chat := authGroup.Group("/chat")
		{
			chat.POST("/problem", c.chat.GenerateProblem)
			chat.GET("/problem/latest", c.chat.LatestProblem)
			chat.POST("/feedback", c.chat.GenerateFeedback)
		}

		authGroup.GET("/achievements", c.achievement.ListUserAchievements)

		authGroup.POST("/feedback", c.feedback.CreateFeedback)
		authGroup.GET("/feedback", c.feedback.ListFeedback)
	}
}
