package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookhub/database"
	"bookhub/internal/config"
	"bookhub/internal/http-api/handler"
	"bookhub/internal/http-api/middleware"
	"bookhub/internal/http-api/repository"
	"bookhub/internal/http-api/service"
	"bookhub/internal/ingestion/googlebooks"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// 2. Connect to the database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	defer database.Close(db)

	// 3. Repositories
	bookRepo := repository.NewBookRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// 4. Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	bookService := service.NewBookService(bookRepo, ratingRepo)
	ratingService := service.NewRatingService(ratingRepo, bookRepo)
	exportService := service.NewExportService(bookRepo, ratingRepo)
	ingestService := googlebooks.NewService(googlebooks.NewClient(cfg.GoogleBooksAPIURL), bookRepo)

	// 5. Handlers
	pagination := handler.Pagination{
		DefaultPageSize: cfg.PageSize,
		MaxPageSize:     cfg.MaxPageSize,
	}
	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(bookService, ingestService, pagination)
	ratingHandler := handler.NewRatingHandler(ratingService, pagination)
	exportHandler := handler.NewExportHandler(exportService)

	// 6. Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	requireAuth := middleware.AuthMiddleware(authService)
	api := r.Group("/api")
	{
		authHandler.RegisterRoutes(api.Group("/auth"))
		bookHandler.RegisterRoutes(api.Group("/books"), requireAuth)
		ratingHandler.RegisterRoutes(api.Group("/ratings"), requireAuth)
		exportHandler.RegisterRoutes(api.Group("/export"))
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	log.Printf("Server running at %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
