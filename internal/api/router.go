package api

import (
	"net/http"
	"time"

	"staynest/internal/api/handler"
	"staynest/internal/api/middleware"
	"staynest/internal/app/service"
	"staynest/internal/common/security"
	"staynest/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	placeService *service.PlaceService,
	bookingService *service.BookingService,
	uploadService *service.UploadService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the session cookie and puts claims in context. Resolution
	// happens here, before any ownership check or attribution write.
	r.Use(jwtauth.Verify(security.TokenAuth, middleware.TokenFromCookie))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.RateLimit(float64(config.AppConfig.RateLimitRPS), config.AppConfig.RateLimitBurst))

		// Auth routes (register/login public, profile optional)
		authHandler := handler.NewAuthHandler(authService, config.AppConfig.JWTExp)
		authHandler.RegisterRoutes(api)

		// Place routes (directory public, mutation owner-gated)
		placeHandler := handler.NewPlaceHandler(placeService)
		api.Route("/places", placeHandler.RegisterRoutes)
		placeHandler.RegisterOwnerRoutes(api)

		// Booking routes (authenticated)
		bookingHandler := handler.NewBookingHandler(bookingService)
		api.Route("/bookings", bookingHandler.RegisterRoutes)

		// Upload route (authenticated)
		uploadHandler := handler.NewUploadHandler(uploadService)
		uploadHandler.RegisterRoutes(api)
	})

	return r
}
