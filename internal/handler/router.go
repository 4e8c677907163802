package handler

import (
	"roomhub/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all API operations onto the given group. Owner-gated
// mutations sit behind the required-auth middleware; read views take the
// optional middleware so liked state can reflect the caller.
func RegisterRoutes(api *gin.RouterGroup) {
	// Auth routes
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", RegisterUser)
		authRoutes.POST("/login", LoginUser)
	}

	// Home feed and topic sidebar
	api.GET("/feed", auth.OptionalAuthMiddleware(), GetFeed)
	api.GET("/topics", GetTopics)

	// Room routes
	roomRoutes := api.Group("/rooms")
	{
		roomRoutes.GET("/:id", auth.OptionalAuthMiddleware(), GetRoomByID)

		protected := roomRoutes.Group("")
		protected.Use(auth.AuthMiddleware())
		{
			protected.POST("", CreateRoom)
			protected.PUT("/:id", UpdateRoom)
			protected.DELETE("/:id", DeleteRoom)
			protected.POST("/:id/messages", CreateMessage)
			protected.POST("/:id/like", LikeRoom)
		}
	}

	// Message routes (protected)
	messageRoutes := api.Group("/messages")
	messageRoutes.Use(auth.AuthMiddleware())
	{
		messageRoutes.DELETE("/:id", DeleteMessage)
		messageRoutes.POST("/:id/like", LikeMessage)
	}

	// User routes
	userRoutes := api.Group("/users")
	{
		userRoutes.GET("/:username", auth.OptionalAuthMiddleware(), GetUserProfile)

		me := userRoutes.Group("/me")
		me.Use(auth.AuthMiddleware())
		{
			me.GET("", GetMe)
			me.PUT("", UpdateUsername)
			me.PUT("/password", UpdatePassword)
			me.PUT("/photo", UpdatePhoto)
		}
	}
}
