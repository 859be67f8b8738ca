package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staynest/internal/api"
	"staynest/internal/app/service"
	"staynest/internal/common/security"
	"staynest/internal/domain/repository"
	"staynest/internal/platform/blob"
	"staynest/internal/platform/cache"
	"staynest/internal/platform/config"
	"staynest/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	cache.Connect()
	defer cache.Close()
	fmt.Println("Redis connected.")

	// 5. Initialize Blob Store
	blobStore, err := blob.NewS3Store(context.Background())
	if err != nil {
		log.Fatalf("Could not initialize blob store: %v", err)
	}
	fmt.Println("Blob store initialized.")

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	placeRepo := repository.NewPgPlaceRepository(database.DB)
	bookingRepo := repository.NewPgBookingRepository(database.DB)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo)
	placeService := service.NewPlaceService(placeRepo, cache.NewRedisStore(cache.RDB), config.AppConfig.PlaceCacheTTL)
	bookingService := service.NewBookingService(bookingRepo, placeRepo)
	uploadService := service.NewUploadService(
		blobStore,
		config.AppConfig.UploadMaxFiles,
		config.AppConfig.UploadMaxFileSizeMB,
		config.AppConfig.UploadRetryAttempts,
	)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, placeService, bookingService, uploadService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
