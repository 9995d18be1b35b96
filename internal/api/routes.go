package api

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, services service.Services) {
	authHandler := NewAuthHandler(services.Auth)
	workoutHandler := NewWorkoutHandler(services.Catalog)
	trainingHandler := NewTrainingHandler(services.Training, services.Progress)
	challengeHandler := NewChallengeHandler(services.Challenge)
	feedHandler := NewFeedHandler(services.Feed)

	authMiddleware := AuthMiddleware(services.Auth)

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
		protected.GET("/me", authHandler.Me)

		// --- Catalog and Community Routes (both roles) ---
		workoutGroup := protected.Group("/workouts")
		workoutGroup.Use(AnyRoleMiddleware())
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:workoutId", workoutHandler.GetWorkout)
			workoutGroup.GET("/:workoutId/exercises/:exerciseId/media", workoutHandler.GetExerciseMedia)
		}

		challengeGroup := protected.Group("/challenges")
		challengeGroup.Use(AnyRoleMiddleware())
		{
			challengeGroup.GET("", challengeHandler.ListChallenges)
			challengeGroup.POST("/:challengeId/join", challengeHandler.JoinChallenge)
		}

		feedGroup := protected.Group("/feed")
		feedGroup.Use(AnyRoleMiddleware())
		{
			feedGroup.GET("", feedHandler.ListPosts)
			feedGroup.POST("", feedHandler.CreatePost)
			feedGroup.POST("/:postId/like", feedHandler.ToggleLike)
			feedGroup.POST("/:postId/share", feedHandler.SharePost)
		}

		// --- Trainer Specific Routes ---
		trainerApiGroup := protected.Group("/trainer")
		trainerApiGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			trainerApiGroup.GET("/students", workoutHandler.ListStudents)
		}

		// --- Student Specific Routes ---
		studentApiGroup := protected.Group("/student")
		studentApiGroup.Use(RoleMiddleware(domain.RoleStudent))
		{
			studentApiGroup.POST("/workouts/:workoutId/session", trainingHandler.StartSession)
			studentApiGroup.GET("/session", trainingHandler.GetSession)
			studentApiGroup.POST("/session/exercises/:exerciseId/complete", trainingHandler.CompleteExercise)
			studentApiGroup.POST("/session/goto", trainingHandler.GoTo)
			studentApiGroup.POST("/session/stop", trainingHandler.StopSession)
			studentApiGroup.DELETE("/session", trainingHandler.DiscardSession)
			studentApiGroup.GET("/stats", trainingHandler.GetStats)
		}
	}
}
