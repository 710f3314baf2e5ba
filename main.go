package main

import (
	"context"
	"flag"
	"fmt"

	"defectpred/config"
	"defectpred/experiment"
	"defectpred/notify"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configFile := flag.String("config", "", "Experiment configuration file, json or yaml (optional)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var cfg config.Config
	if *configFile != "" {
		config.LoadDotEnv(".env")
		cfg = config.Load(*configFile)
	} else {
		cfg = config.LoadConfig(".env", "config.json", "config.yaml")
	}

	ctx := context.Background()

	expCfg, cleanup, err := buildExperiment(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid experiment configuration")
	}
	defer cleanup()

	log.Info().
		Str("experiment", cfg.ExperimentName).
		Str("data", cfg.DataPath).
		Str("results", cfg.ResultsPath).
		Msg("starting experiment")

	if err := experiment.New(expCfg).Run(ctx); err != nil {
		if nerr := notify.Send(fmt.Sprintf("Experiment %s failed: %v", cfg.ExperimentName, err), cfg); nerr != nil {
			log.Warn().Err(nerr).Msg("failed to send notification")
		}
		log.Fatal().Err(err).Msg("experiment failed")
	}

	if err := notify.Send(fmt.Sprintf("Experiment %s finished", cfg.ExperimentName), cfg); err != nil {
		log.Warn().Err(err).Msg("failed to send notification")
	}
	log.Info().Str("experiment", cfg.ExperimentName).Msg("experiment finished")
}
