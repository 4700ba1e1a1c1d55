package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kanny/internal/auth"
	"kanny/internal/config"
	"kanny/internal/handler"
	"kanny/internal/middleware"
	"kanny/internal/model"
	"kanny/internal/repository"
	"kanny/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := db.AutoMigrate(
		&model.User{},
		&model.Board{},
		&model.Column{},
		&model.Card{},
		&model.RefreshToken{},
	); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate schema: %w", err)
	}

	// Firebase verification is wired at startup; a bad project config fails
	// the process here instead of the first federated login.
	var verifier service.IdentityVerifier
	if cfg.FirebaseProjectID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		fv, err := auth.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID)
		if err != nil {
			return nil, fmt.Errorf("❌ failed to initialize Firebase verifier: %w", err)
		}
		verifier = fv
		log.Println("✅ Firebase auth enabled")
	} else {
		log.Println("⚠️  FIREBASE_PROJECT_ID not set, Firebase auth disabled")
	}

	// Setup Gin
	r := gin.Default()
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	cardRepo := repository.NewCardRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Initialize services
	tokenService := auth.NewTokenService(cfg, refreshTokenRepo)
	authService := service.NewAuthService(userRepo, tokenService, verifier)
	boardService := service.NewBoardService(boardRepo)
	columnService := service.NewColumnService(columnRepo, boardRepo)
	cardService := service.NewCardService(cardRepo, columnRepo, boardRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	boardHandler := handler.NewBoardHandler(boardService)
	columnHandler := handler.NewColumnHandler(columnService)
	cardHandler := handler.NewCardHandler(cardService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Kanny Kanban API is running"})
	})

	// Public auth routes
	r.POST("/auth/signup", authHandler.Signup)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/firebase", authHandler.FirebaseAuth)
	r.POST("/auth/refresh", authHandler.Refresh)
	r.POST("/auth/logout", authHandler.Logout)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(tokenService))
	{
		authorized.GET("/auth/me", authHandler.Me)

		// Board routes
		authorized.GET("/boards", boardHandler.GetAll)
		authorized.GET("/boards/current", boardHandler.GetCurrent)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.POST("/boards", boardHandler.Create)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		// Column routes (nested under boards)
		authorized.POST("/boards/:id/columns", columnHandler.Create)
		authorized.PUT("/boards/columns/:id", columnHandler.Update)
		authorized.DELETE("/boards/columns/:id", columnHandler.Delete)

		// Card routes
		authorized.POST("/columns/:id/cards", cardHandler.Create)
		authorized.PUT("/cards/:id", cardHandler.Update)
		authorized.DELETE("/cards/:id", cardHandler.Delete)
		authorized.PUT("/cards/:id/move", cardHandler.Move)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    s.Config.ServerHost + ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on %s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
