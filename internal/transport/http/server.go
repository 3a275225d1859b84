package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/handler"
	"inkwell/internal/ratelimit"
	appredis "inkwell/internal/redis"
	"inkwell/internal/repository"
	"inkwell/internal/service"
)

// Run wires every layer explicitly and starts the HTTP server. The store
// handle and every collaborator are constructed once here and passed
// down; nothing is reached through ambient global state.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Rate limiting is optional: without Redis the limiter allows all.
	var limiter *ratelimit.Limiter
	if cfg.RedisURL != "" {
		redisClient, err := appredis.NewClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(pingCtx); err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}

		limiter = ratelimit.New(redisClient.Client, cfg.MailRatePerHour, ratelimit.DefaultWindow)
	} else {
		log.Println("REDIS_URL not set, mail rate limiting disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	mailer := service.NewSMTPMailer(cfg)
	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(userRepo, profileRepo)
	onboardingService := service.NewOnboardingService(registrationRepo, userRepo, mailer)
	postService := service.NewPostService(postRepo, engagementRepo)
	engagementService := service.NewEngagementService(engagementRepo, postRepo)
	adminService := service.NewAdminService(adminRepo, userRepo, postRepo)

	mediaService, err := service.NewMediaService(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create media service: %w", err)
	}

	router := NewRouter(RouterConfig{
		AuthHandler:       handler.NewAuthHandler(userService, authService, onboardingService, limiter),
		PostHandler:       handler.NewPostHandler(postService),
		EngagementHandler: handler.NewEngagementHandler(engagementService),
		ProfileHandler:    handler.NewProfileHandler(userService),
		AdminHandler:      handler.NewAdminHandler(adminService),
		MediaHandler:      handler.NewMediaHandler(mediaService),
		ContactHandler:    handler.NewContactHandler(mailer, limiter),
		UserRepo:          userRepo,
		JWTSecret:         cfg.JWTSecret,
	})

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
