package main // Entry point package

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/ploshtadka/venue-ms/internal/config"
	"github.com/ploshtadka/venue-ms/internal/database"
	"github.com/ploshtadka/venue-ms/internal/handler"
	"github.com/ploshtadka/venue-ms/internal/logging"
	"github.com/ploshtadka/venue-ms/internal/middleware"
	"github.com/ploshtadka/venue-ms/internal/repository"
	"github.com/ploshtadka/venue-ms/internal/router"
	"github.com/ploshtadka/venue-ms/internal/users"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	cfg := config.Load()
	logging.Setup("venue-ms", cfg.Env)

	db, err := database.Open(cfg.DBURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	venueRepo := repository.NewVenueRepo(db)
	imageRepo := repository.NewImageRepo(db)
	unavailRepo := repository.NewUnavailabilityRepo(db)

	h := router.Handlers{
		Venue:   handler.NewVenueHandler(venueRepo, imageRepo, unavailRepo),
		Image:   handler.NewImageHandler(venueRepo, imageRepo),
		Unavail: handler.NewUnavailabilityHandler(venueRepo, unavailRepo),
		Health:  &handler.HealthHandler{DB: db},
	}

	// Redis is optional: a nil client disables the response cache and the
	// public endpoints still serve their Cache-Control headers.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, response cache disabled")
	}
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	identity := middleware.Identity(users.New(cfg.UsersMSURL))

	e := echo.New()
	e.HideBanner = true
	e.Use(logging.RequestLogger())
	router.Register(e, h, identity, cache)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")

	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
