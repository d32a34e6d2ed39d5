package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/scorefour/automatic"
	"github.com/domino14/scorefour/config"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("loading-config")
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var logStream io.Writer
	if path := cfg.GetString(config.ConfigSelfplayLogStream); path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatal().Err(err).Msg("creating-log-stream")
		}
		defer f.Close()
		logStream = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := automatic.NewGameRunner(cfg, logStream)
	if path := cfg.GetString(config.ConfigSelfplayDB); path != "" {
		store, err := automatic.OpenResultStore(path)
		if err != nil {
			log.Fatal().Err(err).Msg("opening-result-store")
		}
		defer store.Close()
		runner.SetResultStore(store)
	}
	games := cfg.GetInt(config.ConfigSelfplayGames)
	log.Info().Int("games", games).
		Int("depth-a", cfg.DepthFor(config.ConfigSelfplayDepthA)).
		Int("depth-b", cfg.DepthFor(config.ConfigSelfplayDepthB)).
		Int("threads", cfg.GetInt(config.ConfigSelfplayThreads)).
		Msg("selfplay-starting")

	report, err := runner.Run(ctx, games)
	if err != nil {
		log.Error().Err(err).Msg("selfplay-stopped")
		return
	}
	if err := report.Write(os.Stdout); err != nil {
		log.Error().Err(err).Msg("writing-report")
	}
}
