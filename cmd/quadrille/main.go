package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/quadrille/config"
	"github.com/domino14/quadrille/render"
	"github.com/domino14/quadrille/runner"
	"github.com/domino14/quadrille/shell"
	"github.com/domino14/quadrille/tiles"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg := config.New()
	args, err := cfg.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usage: %s <tile file> [--all-solutions] [--threads <n>] [--color] [--blocks] [--silent] [--flat]\n", os.Args[0])
		return 1
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	var logger zerolog.Logger
	if cfg.Debug() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		logger = zerolog.New(output).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	}
	log.Logger = logger

	blocks := cfg.Blocks()
	if blocks && !cfg.Color() {
		fmt.Fprintln(os.Stderr, "WARNING: --blocks must be used with the --color argument.")
		blocks = false
	}

	if len(args) == 0 {
		// No tile file: drop into the interactive shell.
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		sc := shell.NewShellController(cfg)
		go sc.Loop(sig)
		<-sig
		return 0
	}

	ts, err := tiles.ParseFile(args[0])
	if err != nil {
		if errors.Is(err, tiles.ErrNoTiles) {
			fmt.Fprintln(os.Stderr, "Error: No valid tiles found in input file.")
		} else {
			fmt.Fprintf(os.Stderr, "Error: Unable to open input file %q.\n", args[0])
		}
		return 1
	}

	job := runner.Job{
		Tiles:        ts,
		AllSolutions: cfg.AllSolutions(),
		Silent:       cfg.Silent(),
		Threads:      cfg.Threads(),
		HSRGate:      cfg.HSRGate(),
		Render: render.Config{
			Color:  cfg.Color(),
			Blocks: blocks,
			Flat:   cfg.Flat(),
		},
		SavePath: cfg.SavePath(),
		Progress: cfg.Progress(),
	}
	if _, err := runner.Run(context.Background(), job, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
