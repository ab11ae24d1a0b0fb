package routes

import (
	"github.com/gin-gonic/gin"

	"blogsyte/internal/handlers"
	"blogsyte/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	otpHandler *handlers.OTPHandler,
	authHandler *handlers.AuthHandler,
	blogHandler *handlers.BlogHandler,
	interactionHandler *handlers.InteractionHandler,
	adminHandler *handlers.AdminHandler,
) *gin.Engine {
	api := r.Group("/api")

	// ---- public
	api.POST("/send-otp", otpHandler.SendOTP)
	api.POST("/verify-otp", otpHandler.VerifyOTP)
	api.POST("/login", authHandler.Login)
	api.POST("/refresh", authHandler.RefreshToken)

	api.GET("/blogs", blogHandler.List)
	api.GET("/blogs/:id", blogHandler.Get)
	api.GET("/blogs/:id/comments", interactionHandler.ListComments)
	api.GET("/blogs/:id/stats", interactionHandler.BlogStats)
	// anonymous views allowed; identity is attached when a token is present
	api.POST("/blogs/:id/view", middleware.OptionalAuth(), interactionHandler.RecordView)

	// ---- authenticated
	auth := api.Group("", middleware.AuthMiddleware())
	{
		auth.POST("/blogs", blogHandler.Create)
		auth.PUT("/blogs/:id", blogHandler.Update)
		auth.DELETE("/blogs/:id", blogHandler.Delete)

		auth.POST("/blogs/:id/like", interactionHandler.ToggleLike)
		auth.GET("/blogs/:id/like-status", interactionHandler.LikeStatus)
		auth.POST("/blogs/:id/comment", interactionHandler.AddComment)
		auth.DELETE("/comments/:id", interactionHandler.DeleteComment)

		auth.GET("/user/dashboard", blogHandler.Dashboard)
	}

	// ---- admin panel
	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users/:id/ban", adminHandler.BanUser)
		admin.POST("/users/:id/unban", adminHandler.UnbanUser)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		admin.GET("/blogs", adminHandler.ListBlogs)
		admin.DELETE("/blogs/:id", adminHandler.DeleteBlog)

		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/stats/report", adminHandler.StatsReport)
	}

	return r
}
