package main

import (
	"fmt"
	"log"
	"net/http"

	"roomhub/backend/internal/config"
	"roomhub/backend/internal/database"
	"roomhub/backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "roomhub/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Roomhub API
// @version         1.0
// @description     This is the API for the Roomhub discussion forum.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	handler.RegisterRoutes(router.Group("/api/v1"))

	fmt.Println("Server is running on :" + config.AppConfig.Port)
	fmt.Println("Swagger UI is available at http://localhost:" + config.AppConfig.Port + "/swagger/index.html")
	log.Fatal(router.Run(":" + config.AppConfig.Port))
}
