// backend/main.go
package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func init() {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found")
	}
}

func main() {
	if err := initDB(databasePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	if err := ensureUploadDir(); err != nil {
		logger.Fatal().Err(err).Msg("failed to create upload directory")
	}

	handler := newRouter()
	port := serverPort()
	logger.Info().Str("port", port).Msg("portfolio backend running")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
