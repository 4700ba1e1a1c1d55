package main

import (
	"log"

	_ "kanny/docs"
	"kanny/internal/config"
	"kanny/internal/server"
)

// @title           Kanny Kanban API
// @version         1.0
// @description     API for personal Kanban boards with ordered columns and cards.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
