package main

import (
	"cmdbus/internal/adapters/config"
	"cmdbus/internal/adapters/hooks"
	"cmdbus/internal/core/domain/command"
	"cmdbus/internal/core/domain/commands"
	"cmdbus/internal/core/service"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	cfg, err := config.Load(viper.GetViper(), ".")
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = cfg.Logger()

	log.Info().Msg("starting cmdbus...")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	registry, err := command.NewRegistry(commands.All(cfg.Disabled...)...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing command registry")
	}

	tracker := service.NewTracker()
	bus := service.NewBus(registry, hooks.Chain{hooks.NewLogger(log.Logger), tracker},
		service.Flags{Command: cfg.CommandFlag, Arg: cfg.ArgFlag})

	result, err := bus.Start(ctx, os.Args[1:])
	if err != nil {
		log.Error().Err(err).Strs("available", registry.ListCommands()).Msg("command dispatch failed")
		cancel()
		os.Exit(1)
	}

	if !bus.IsCliMode() {
		log.Info().Strs("commands", registry.ListCommands()).Msg("no command selected, ready for in-process dispatch")
		return
	}

	if value, err := result.Get(); err == nil {
		fmt.Println(value)
	}

	for id, stats := range tracker.Snapshot() {
		log.Debug().Str("command", id).Int("executed", stats.Executed).Int("failed", stats.Failed).
			Msg("dispatch stats")
	}
}
