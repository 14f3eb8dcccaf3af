package main

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fretquiz/internal/httpserver"
	"fretquiz/internal/store"
	"os"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	delay := time.Duration(envInt("FEEDBACK_DELAY_MS", 900)) * time.Millisecond
	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, delay)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Dur("feedbackDelay", delay).Msg("starting fretquiz server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" { return v }
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
