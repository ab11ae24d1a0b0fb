package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"blogsyte/internal/config"
	"blogsyte/internal/handlers"
	"blogsyte/internal/middleware"
	"blogsyte/internal/pdf"
	"blogsyte/internal/repositories"
	"blogsyte/internal/routes"
	"blogsyte/internal/services"
	"blogsyte/internal/storage"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "blogsyte/docs"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.SetJWTKey(cfg.JWT.Secret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to reach database: ", err)
	}
	if err := repositories.InitSchema(db); err != nil {
		log.Fatal("Failed to bootstrap schema: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	blogRepo := repositories.NewBlogRepository(db)
	interactionRepo := repositories.NewInteractionRepository(db)

	// === OTP store (in-memory, swept in the background) ===
	otpStore := storage.NewOtpStore()

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	var telegramService *services.TelegramService
	if cfg.Telegram.Enabled {
		telegramService, err = services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID)
		if err != nil {
			log.Printf("Telegram integration disabled: %v", err)
			telegramService = nil
		}
	}

	otpService := services.NewOTPService(otpStore, userRepo, emailService, authService, telegramService)
	userService := services.NewUserService(userRepo)
	blogService := services.NewBlogService(blogRepo, telegramService)
	interactionService := services.NewInteractionService(interactionRepo, blogRepo)
	reportService := services.NewReportService(userRepo, blogRepo, interactionRepo)

	go otpService.RunSweeper(ctx)

	// === Handlers ===
	otpHandler := handlers.NewOTPHandler(otpService)
	authHandler := handlers.NewAuthHandler(userService, authService)
	blogHandler := handlers.NewBlogHandler(blogService, userService, interactionService)
	interactionHandler := handlers.NewInteractionHandler(interactionService, blogService)
	adminHandler := handlers.NewAdminHandler(userService, blogService, reportService, pdf.NewReportGenerator())

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		otpHandler,
		authHandler,
		blogHandler,
		interactionHandler,
		adminHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
