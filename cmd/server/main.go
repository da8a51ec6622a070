package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/hackhub/hackhub-server/internal/config"
	"github.com/hackhub/hackhub-server/internal/database"
	"github.com/hackhub/hackhub-server/internal/handler"
	"github.com/hackhub/hackhub-server/internal/mailer"
	"github.com/hackhub/hackhub-server/internal/middleware"
	"github.com/hackhub/hackhub-server/internal/queue"
	"github.com/hackhub/hackhub-server/internal/repository"
	"github.com/hackhub/hackhub-server/internal/router"
	"github.com/hackhub/hackhub-server/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	rdb := config.NewRedisClient() // nil disables cache + rate limiting
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}
	listingCache := middleware.NewListingCache(config.LoadCacheConfig(), rdb)
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	users := repository.NewUserRepo(db)
	hackathons := repository.NewHackathonRepo(db)
	registrations := repository.NewRegistrationRepo(db, hackathons)
	tokens := repository.NewTokenRepo(db)

	mail := mailer.NewClient(cfg)
	if !mail.Enabled() {
		log.Printf("smtp not configured, notifications will be logged only")
	}
	go queue.StartNotificationConsumer(mail)

	h := router.Handlers{
		Users:         handler.NewUserHandler(users),
		Hackathons:    handler.NewHackathonHandler(users, hackathons, listingCache, service.PublishNotification),
		Registrations: handler.NewRegistrationHandler(users, hackathons, registrations, listingCache, service.PublishNotification),
		Auth:          handler.NewAuthHandler(cfg, users, tokens),
		Email:         handler.NewEmailHandler(mail),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, h, cfg.Env, cfg.JWTSecret, rateLimit, listingCache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
