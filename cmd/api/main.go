// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joinember/ember-backend/internal/auth"
	"github.com/joinember/ember-backend/internal/common/database"
	"github.com/joinember/ember-backend/internal/common/logger"
	"github.com/joinember/ember-backend/internal/common/utils"
	"github.com/joinember/ember-backend/internal/config"
	"github.com/joinember/ember-backend/internal/discovery"
	"github.com/joinember/ember-backend/internal/profile"
	"github.com/joinember/ember-backend/internal/user"
)

var startTime = time.Now()

func main() {
	// 1. Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Log.Warn("⚠️  No .env file found, using environment variables")
	}

	// 2. Load and validate configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Log.WithError(err).Fatal("❌ Configuration validation failed")
	}

	logger.InitLogger(cfg.LogLevel, cfg.Environment)
	logger.Log.Info("🚀 Starting Ember Discovery API")

	// 3. Connect to PostgreSQL
	logger.Log.Info("🗄️  Connecting to PostgreSQL...")
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("❌ Failed to connect to PostgreSQL")
	}
	defer db.Close()
	logger.Log.Info("✅ Connected to PostgreSQL")

	// 4. Connect to Redis (optional, degrades to no rate limiting)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Log.WithError(err).Warn("⚠️  Redis unavailable, continuing without it")
			redisClient = nil
		} else {
			defer redisClient.Close()
			logger.Log.Info("✅ Connected to Redis")
		}
	}

	// 5. Run database migrations
	logger.Log.Info("🔨 Running database migrations...")
	if err := runMigrations(db); err != nil {
		logger.Log.WithError(err).Fatal("❌ Failed to run migrations")
	}
	logger.Log.Info("✅ Database migrations completed")

	// 6. Wire repositories
	userRepo := user.NewPostgresRepository(db)
	profileRepo := profile.NewPostgresRepository(db)
	discoveryRepo := discovery.NewPostgresRepository(db)
	matchRepo := discovery.NewMatchRepository(db)

	// 7. Initialize Profile module
	profileService := profile.NewService(profileRepo)
	profileHandler := profile.NewHandler(profileService)
	logger.Log.Info("✅ Profile module initialized")

	// 8. Initialize Discovery module
	var limiter discovery.RateLimiter
	if redisClient != nil {
		limiter = discovery.NewRedisLimiter(redisClient, cfg.SwipesMax, cfg.SwipesWindow)
	}

	hub := discovery.NewHub()
	go hub.Run()

	discoveryService := discovery.NewService(
		profileRepo, userRepo, discoveryRepo, discoveryRepo, matchRepo,
		discovery.Options{
			MinCompletion: cfg.MinCompletionPercentage,
			DefaultLimit:  cfg.DefaultFeedLimit,
			MaxLimit:      cfg.MaxFeedLimit,
			Limiter:       limiter,
			Notifier:      hub,
		},
	)
	discoveryHandler := discovery.NewHandler(discoveryService, hub)
	logger.Log.Info("✅ Discovery module initialized")

	// 9. Build router
	authMiddleware := auth.NewMiddleware(cfg.JWTSecret)

	router := mux.NewRouter()
	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	profile.RegisterRoutes(router, profileHandler, authMiddleware)
	discovery.RegisterRoutes(router, discoveryHandler, authMiddleware)

	// 10. Start server with graceful shutdown
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.WithField("port", cfg.Port).Info("🌐 Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("❌ Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Fatal("❌ Server forced to shutdown")
	}

	logger.Log.Info("👋 Server exited")
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	})
}

// Middleware functions

// requestIDMiddleware tags every request so log lines correlate.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), "requestID", requestID)))
	})
}

// loggingMiddleware logs all requests with status and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		logger.Log.WithFields(map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     wrapped.statusCode,
			"duration":   time.Since(start).String(),
			"request_id": wrapped.Header().Get("X-Request-ID"),
		}).Info("request completed")
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
