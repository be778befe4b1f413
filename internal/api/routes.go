package api

import (
	"cliprace/backend/internal/domain" // Needed for RoleMiddleware
	"cliprace/backend/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	contestService service.ContestService,
	submissionService service.SubmissionService,
	leaderboardService service.LeaderboardService,
	analyticsService service.AnalyticsService,
	cashoutService service.CashoutService,
	metricsService service.MetricsService,
) {
	authHandler := NewAuthHandler(authService)
	brandHandler := NewBrandHandler(contestService, submissionService, leaderboardService, analyticsService)
	creatorHandler := NewCreatorHandler(contestService, submissionService, cashoutService)
	metricsHandler := NewMetricsHandler(metricsService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// Contest discovery, open to any authenticated role
		protected.GET("/contests", creatorHandler.ListActiveContests)

		// --- Brand Routes ---
		// Require authentication AND the 'brand' role.
		brandGroup := protected.Group("/brand")
		brandGroup.Use(RoleMiddleware(domain.RoleBrand))
		{
			// Contest management
			brandGroup.POST("/contests", brandHandler.CreateContest)
			brandGroup.GET("/contests", brandHandler.GetMyContests)
			brandGroup.GET("/contests/:id", brandHandler.GetContest)
			brandGroup.PATCH("/contests/:id/status", brandHandler.UpdateContestStatus)
			brandGroup.POST("/contests/:id/banner-upload", brandHandler.GenerateBannerUpload)

			// Leaderboard & reporting
			brandGroup.GET("/contests/:id/leaderboard", brandHandler.GetLeaderboard)
			brandGroup.POST("/contests/:id/recompute", brandHandler.RecomputeLeaderboard)
			brandGroup.GET("/contests/:id/report", brandHandler.GetContestReport)

			// Submission moderation
			brandGroup.POST("/submissions/:id/approve", brandHandler.ApproveSubmission)
			brandGroup.POST("/submissions/:id/reject", brandHandler.RejectSubmission)
		}

		// --- Creator Routes ---
		creatorGroup := protected.Group("/creator")
		creatorGroup.Use(RoleMiddleware(domain.RoleCreator))
		{
			creatorGroup.POST("/submissions", creatorHandler.CreateSubmission)
			creatorGroup.GET("/submissions", creatorHandler.GetMySubmissions)
			creatorGroup.POST("/cashouts", creatorHandler.RequestCashout)
			creatorGroup.GET("/cashouts", creatorHandler.GetMyCashouts)
		}

		// --- Admin Routes ---
		// Brands may also trigger the mock metrics refresh for demos.
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin, domain.RoleBrand))
		{
			adminGroup.POST("/metrics/refresh", metricsHandler.RefreshMetrics)
		}
	}
}
