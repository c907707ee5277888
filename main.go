// apps/go-server/main.go
//
// Entry point for the brain-training API server.
// Loads .env, configures logging, loads the word lists, opens the results
// database, picks a word generator and serves HTTP until the process exits.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/brainplay/apps/go-server/assets"
	"github.com/robalobadob/brainplay/apps/go-server/internal/config"
	"github.com/robalobadob/brainplay/apps/go-server/internal/database"
	"github.com/robalobadob/brainplay/apps/go-server/internal/httpserver"
	"github.com/robalobadob/brainplay/apps/go-server/internal/results"
	"github.com/robalobadob/brainplay/apps/go-server/internal/store"
	"github.com/robalobadob/brainplay/apps/go-server/internal/wordgen"
	"github.com/robalobadob/brainplay/apps/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", cfg.DBPath).Msg("open database")
	}
	defer db.Close()
	if err := database.Migrate(db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var gen wordgen.Generator = wordgen.NewStatic(0)
	if cfg.AIEnabled() {
		gemini, err := wordgen.NewGemini(ctx, wordgen.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Project: cfg.GCPProject,
			Region:  cfg.GCPRegion,
			Model:   cfg.GeminiModel,
		})
		if err != nil {
			log.Warn().Err(err).Msg("gemini unavailable, using built-in word lists")
		} else {
			gen = wordgen.Fallback{Primary: gemini, Secondary: gen}
			log.Info().Str("model", cfg.GeminiModel).Msg("word generation via gemini")
		}
	}

	games := store.NewMemoryStore()
	srv := httpserver.New(cfg, games, results.NewStore(db), gen)
	go srv.SweepGames(ctx, cfg.GameTTL, time.Minute)

	go func() {
		log.Info().Str("port", cfg.Port).Bool("memoryDB", database.IsMemory(cfg.DBPath)).Msg("starting go-server")
		if err := srv.Start(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
}
