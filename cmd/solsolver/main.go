package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/solsolver/astar"
	"github.com/domino14/solsolver/board"
	"github.com/domino14/solsolver/config"
	"github.com/domino14/solsolver/race"
)

// Exit codes. The supervising automation distinguishes "this deal has no
// solution in the explored space" from "this attempt ran out of memory
// and may be worth retrying"; they must never be conflated.
const (
	ExitSolved       = 0
	ExitError        = 1
	ExitNoSolution   = 2
	ExitMemoryBudget = 3
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	var logger zerolog.Logger
	if cfg.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	log.Logger = logger

	b, err := board.ParseDeal(os.Stdin)
	if err != nil {
		log.Err(err).Msg("parsing deal")
		return ExitError
	}
	sucked := b.Cascade()
	log.Info().Int("initial-sucks", len(sucked)).
		Int("cards-remaining", b.CardsRemaining()).Msg("deal-loaded")
	log.Debug().Msg("\n" + b.String())

	budget := astar.DefaultBudget()
	if limit := cfg.GetUint64("memory-limit"); limit != 0 {
		budget.LimitBytes = limit
	}

	controller := race.NewController(budget)
	controller.SetRequireEmptyHold(cfg.GetBool("require-empty-hold"))
	controller.SetEarlyExitOptim(cfg.GetBool("early-exit"))
	if logPath := cfg.GetString("race-log"); logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			log.Err(err).Msg("creating race log")
			return ExitError
		}
		defer f.Close()
		controller.SetLogStream(f)
	}

	result, err := controller.Run(context.Background(), b)
	switch {
	case errors.Is(err, astar.ErrMemoryBudget):
		log.Error().Msg("out of memory budget; giving up on this deal")
		return ExitMemoryBudget
	case errors.Is(err, astar.ErrNoSolution):
		log.Info().Msg("no solution found")
		return ExitNoSolution
	case err != nil:
		log.Err(err).Msg("race failed")
		return ExitError
	}

	for _, m := range result.Moves {
		fmt.Fprintf(os.Stderr, "%s (%d sucks)\n", m.ShortDescription(), m.Sucks)
		fmt.Println(m.Serialize())
	}
	return ExitSolved
}
