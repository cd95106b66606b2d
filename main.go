package main

import (
	"log"
	"net/http"
	"os"

	"hms/config"
	"hms/jobs"
	"hms/routes"
	"hms/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	if err := config.Migrate(config.DB); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}
	if err := config.Seed(config.DB, services.HashPassword); err != nil {
		log.Fatalf("Failed to seed data: %v", err)
	}

	config.InitWebSocket(router, m)

	stayService := routes.SetupRoutes(router, config.DB, config.RedisClient, m)

	jobs.SetArrivalLister(stayService)
	if err := jobs.InitCronJobs(c, m); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
