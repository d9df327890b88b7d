package main

import (
	"log"

	"construction-planner-api/internal/database"
	"construction-planner-api/internal/routes"
)

func main() {
	// Init database
	database.InitDB()

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes()

	// Start server
	port := ":8008" // This is customizable based on the environment
	log.Printf("Server starting on port %s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/login")
	log.Println("  GET    /api/tasks")
	log.Println("  POST   /api/tasks")
	log.Println("  GET    /api/tasks/:id")
	log.Println("  PATCH  /api/tasks/:id/progress")
	log.Println("  POST   /api/tasks/import")
	log.Println("  GET    /api/tasks/export")
	log.Println("  GET    /api/chart")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
