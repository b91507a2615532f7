package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/motorhaus/garagego/internal/ai"
	"github.com/motorhaus/garagego/internal/config"
	"github.com/motorhaus/garagego/internal/database"
	"github.com/motorhaus/garagego/internal/handlers"
	"github.com/motorhaus/garagego/internal/models"
	"github.com/motorhaus/garagego/internal/websocket"
	"github.com/motorhaus/garagego/internal/workshop"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema (Critical for Zero-Config)
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.OwnedTool{},
		&models.Vehicle{},

		// Parts
		&models.InventoryItem{},
		&models.MasterPart{},
		&models.ComponentType{},
		&models.Order{},

		// Jobs and their plan rows
		&models.Job{},
		&models.JobPart{},
		&models.JobTask{},
		&models.JobTool{},
		&models.JobSpec{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Live update hub
	hub := websocket.NewHub()
	go hub.Run()

	// 5. Workshop engine
	svc := workshop.NewService(db.DB, hub)

	// 6. AI planner (optional)
	var planner *ai.Planner
	if cfg.AI.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(context.Background(), cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
		if err != nil {
			log.Printf("⚠️ AI: Failed to init Gemini client: %v", err)
		} else {
			defer client.Close()
			planner = ai.NewPlanner(client)
			log.Println("✅ AI: Plan generator ready")
		}
	} else {
		log.Println("⚠️ AI: GEMINI_API_KEY not set, plan generation disabled")
	}

	// 7. HTTP router
	router := handlers.NewRouter(db, cfg, svc, planner, hub)

	// 8. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	// Create context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
