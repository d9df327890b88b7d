package routes

import (
	"construction-planner-api/internal/handlers"
	"construction-planner-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204) // This depends on the implementation of the frontend
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Construction Planner API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		// Login endpoint
		api.POST("/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Schedule endpoints
		protectedRoutes.GET("/tasks", handlers.GetTasks)
		protectedRoutes.POST("/tasks", handlers.CreateTask)
		protectedRoutes.GET("/tasks/export", handlers.ExportTasks)
		protectedRoutes.POST("/tasks/import", handlers.ImportTasks)
		protectedRoutes.GET("/tasks/:id", handlers.GetTaskByID)
		protectedRoutes.PATCH("/tasks/:id/progress", handlers.UpdateTaskProgress)
		// Gantt chart model
		protectedRoutes.GET("/chart", handlers.GetChart)
		// Schedule change events
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	return ginRouter
}
