package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/stayviet/stayviet/internal/cache"
	"github.com/stayviet/stayviet/internal/http/handlers"
	apimw "github.com/stayviet/stayviet/internal/http/middleware"
	"github.com/stayviet/stayviet/internal/mailer"
	"github.com/stayviet/stayviet/internal/repo/postgres"
	"github.com/stayviet/stayviet/internal/service"
	"github.com/stayviet/stayviet/pkg/config"
	"github.com/stayviet/stayviet/pkg/database"
	"github.com/stayviet/stayviet/pkg/events"
	"github.com/stayviet/stayviet/pkg/logger"
	"github.com/stayviet/stayviet/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := database.Connect(ctx, cfg.Database)
	cancel()
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisCache := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(context.Background()); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
		redisCache = nil
	}

	var bus events.Publisher = events.NoopPublisher{}
	if natsPub, err := events.NewNATSPublisher(cfg.NATS.URL); err != nil {
		logger.Warn("NATS unavailable, events disabled", "error", err)
	} else {
		bus = natsPub
	}
	defer bus.Close()

	var mail mailer.Service
	if cfg.Email.DevMode || cfg.Email.MailerSendKey == "" {
		mail = mailer.NewDevMailer()
	} else {
		mail = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	usersRepo := postgres.NewUsersRepo(pool)
	propertiesRepo := postgres.NewPropertiesRepo(pool)
	bookingsRepo := postgres.NewBookingsRepo(pool)
	reviewsRepo := postgres.NewReviewsRepo(pool)

	var svcCache service.Cache
	if redisCache != nil {
		svcCache = redisCache
	}

	propertyService := service.NewPropertyService(propertiesRepo, svcCache, cfg.Redis.CacheTTL)
	bookingService := service.NewBookingService(bookingsRepo, propertiesRepo, bus)
	reviewService := service.NewReviewService(reviewsRepo, bookingsRepo, propertiesRepo, svcCache, bus)
	userService := service.NewUserService(usersRepo, propertiesRepo, mail, cfg)

	h := handlers.New(propertyService, bookingService, reviewService, userService)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Recover)
	r.Use(middleware.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireAuth := apimw.RequireAuth(cfg.Auth.JWTSecret)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			if redisCache != nil {
				limiter := cache.NewRateLimiter(redisCache, 20, time.Minute)
				r.Use(apimw.RateLimit(limiter))
			}
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Get("/verify", h.VerifyEmail)
			r.With(requireAuth).Get("/me", h.Me)
		})

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", h.ListProperties)
			r.Get("/{id}", h.GetProperty)
			r.Get("/{id}/availability", h.CheckAvailability)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", h.CreateBooking)
			r.Get("/my-bookings", h.ListMyBookings)
			r.Get("/{id}", h.GetBooking)
			r.Put("/{id}/cancel", h.CancelBooking)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/property/{id}", h.ListPropertyReviews)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", h.CreateReview)
				r.Get("/my-reviews", h.ListMyReviews)
				r.Delete("/{id}", h.DeleteReview)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.UpdateProfile)
			r.Post("/favorites/{id}", h.AddFavorite)
			r.Delete("/favorites/{id}", h.RemoveFavorite)
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("starting API server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
