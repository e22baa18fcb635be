package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/sparse-gol/model"
	"github.com/sheikhrachel/sparse-gol/utils"
)

// headlessLogEvery is how often the headless renderer logs a generation
const headlessLogEvery = 10

func main() {
	var (
		configPath = flag.String("config", "config.json", "path to the JSON configuration file")
		headless   = flag.Bool("headless", false, "log generations instead of drawing them in the terminal")
	)
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Using default configuration (%s not found)\n", *configPath)
		config = utils.DefaultConfig()
	}

	if err = config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(config, *headless)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var g *game
	if *headless {
		g, err = runHeadless(ctx, config, logger)
	} else {
		g, err = runTerminal(ctx, config, logger)
	}
	if err != nil {
		logger.Error("game failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}

	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		g.generation, g.stats.Runtime().Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population, %d peak population\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation, g.stats.PeakPopulation)
}

// newLogger builds the structured logger. Terminal runs log to log_file (or
// nowhere) so records never draw over the screen.
func newLogger(config utils.Config, headless bool) (*slog.Logger, func(), error) {
	level, err := config.SlogLevel()
	if err != nil {
		return nil, nil, err
	}

	var (
		w       io.Writer = io.Discard
		closeFn           = func() {}
	)
	switch {
	case config.LogFile != "":
		f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "[newLogger] failed to open log file: %+v", config.LogFile)
		}
		w, closeFn = f, func() { _ = f.Close() }
	case headless:
		w = os.Stderr
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

// runHeadless runs the simulation without a screen, logging progress
func runHeadless(ctx context.Context, config utils.Config, logger *slog.Logger) (*game, error) {
	engine, err := model.NewEngine(config.Width, config.Height)
	if err != nil {
		return nil, err
	}

	g, err := initializeGame(config, engine, model.NewLogRenderer(logger, headlessLogEvery), logger)
	if err != nil {
		return nil, err
	}
	return g, g.loop(ctx, nil)
}

// runTerminal runs the simulation on a tcell screen. The game loop and the
// input poller run side by side; whichever finishes first stops the other.
func runTerminal(ctx context.Context, config utils.Config, logger *slog.Logger) (*game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "[runTerminal] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[runTerminal] failed to initialize screen")
	}
	defer screen.Fini()
	screen.HideCursor()

	width, height := config.Width, config.Height
	if config.FitTerminal {
		// the last row holds the status line
		cols, rows := screen.Size()
		width, height = cols, rows-1
	}

	engine, err := model.NewEngine(width, height)
	if err != nil {
		return nil, err
	}

	g, err := initializeGame(config, engine, model.NewTerminalRenderer(screen, engine.Height()), logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		commands  = make(chan command)
		eg, egCtx = errgroup.WithContext(ctx)
	)
	eg.Go(func() error {
		// wake the poller once the loop is done
		defer func() { _ = screen.PostEvent(tcell.NewEventInterrupt(nil)) }()
		defer cancel()
		return g.loop(egCtx, commands)
	})
	eg.Go(func() error {
		return pollInput(egCtx, screen, commands)
	})

	start := time.Now()
	err = eg.Wait()
	logger.Info("game finished", "generation", g.generation, "elapsed", time.Since(start))
	return g, err
}
