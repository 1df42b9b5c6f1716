package main

import (
	"io"
	"net/url"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is set at build time with ldflags.
var version = "0.0.0"

func main() {
	// A .env file is optional, environment variables take precedence
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		err := os.MkdirAll("data", os.ModePerm)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create data directory")
		}
		dsn = "data/planify.db"
	}

	err := models.Connect(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	apiURL, err := url.Parse(os.Getenv("API_URL"))
	if err != nil {
		log.Fatal().Err(err).Msg("API_URL is not a valid URL")
	}

	r, err := router.Config(apiURL)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}
	router.AttachRoutes(r.Group("/"))

	log.Info().Str("version", version).Msg("backend startup complete")

	if err := r.Run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}
