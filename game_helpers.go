package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/sparse-gol/model"
	"github.com/sheikhrachel/sparse-gol/utils"
)

// command is a user request forwarded from the input poller to the game loop
type command int

const (
	cmdQuit command = iota
	cmdPause
	cmdReseed
)

// game holds the driver state: the current population snapshot and its generation
type game struct {
	config   utils.Config
	engine   model.Engine
	offsets  []model.Position
	rng      *rand.Rand
	renderer model.Renderer
	stats    *utils.Stats
	history  model.History
	pool     *model.GridPool
	logger   *slog.Logger

	population     model.Population
	generation     int
	stagnantCount  int
	lastRestartGen int
	lastFrameTime  time.Time
	paused         bool
	verifyFailures int
}

// initializeGame sets up the initial game state
func initializeGame(
	config utils.Config,
	engine model.Engine,
	renderer model.Renderer,
	logger *slog.Logger,
) (*game, error) {
	offsets, err := config.SeedOffsets()
	if err != nil {
		return nil, err
	}

	randSeed := config.RandSeed
	if randSeed == 0 {
		randSeed = time.Now().UnixNano()
	}

	g := &game{
		config:        config,
		engine:        engine,
		offsets:       offsets,
		rng:           rand.New(rand.NewSource(randSeed)),
		renderer:      renderer,
		stats:         utils.NewStats(),
		logger:        logger,
		pool:          model.NewGridPool(),
		lastFrameTime: time.Now(),
	}
	g.population = g.seedPopulation()

	logger.Info("game initialized",
		"width", engine.Width(),
		"height", engine.Height(),
		"living_cells", len(g.population),
		"rand_seed", randSeed,
	)
	return g, nil
}

// seedPopulation builds a fresh population stamped with the current generation
func (g *game) seedPopulation() model.Population {
	pop := g.engine.Seed(g.offsets, g.generation)
	return g.engine.Randomize(pop, g.config.RandomDensity, g.generation, g.rng)
}

// updateGameState updates stats and history and returns status information
func (g *game) updateGameState() (int, string, bool) {
	livingCells := len(g.population)

	// Update performance stats
	g.stats.Update(g.generation, livingCells, time.Since(g.lastFrameTime))

	isStagnant := g.history.IsStagnant(g.population)
	g.history.Update(g.population)

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, status, isStagnant
}

// statusLine formats the line shown under the grid
func (g *game) statusLine(livingCells int, status string) string {
	line := fmt.Sprintf("Gen: %d | Living: %d | Status: %s | %.1f gen/sec | Avg Pop: %.1f",
		g.generation, livingCells, status, g.stats.GenerationsPerSecond, g.stats.AveragePopulation)
	if g.generation > g.lastRestartGen {
		line += fmt.Sprintf(" | Since restart: %d", g.generation-g.lastRestartGen)
	}
	return line
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restartGame reseeds the population, keeping the generation counter running
func (g *game) restartGame(reason string) {
	g.population = g.seedPopulation()
	g.history.Reset()
	g.stagnantCount = 0
	g.lastRestartGen = g.generation

	g.logger.Info("restarted",
		"reason", reason,
		"generation", g.generation,
		"living_cells", len(g.population),
	)
}

// tick renders the current generation and advances to the next one. It reports
// true once the generation limit has been reached.
func (g *game) tick() bool {
	frameStart := time.Now()
	livingCells, status, isStagnant := g.updateGameState()
	g.lastFrameTime = frameStart

	if isStagnant {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}

	g.renderer.Display(g.population, g.generation, g.statusLine(livingCells, status))

	if g.config.MaxGenerations > 0 && g.generation >= g.config.MaxGenerations {
		g.logger.Info("reached maximum generations limit", "max_generations", g.config.MaxGenerations)
		return true
	}

	shouldRestart, reason := checkRestartConditions(livingCells, g.stagnantCount, g.config)
	if shouldRestart && g.config.AutoRestart {
		g.restartGame(reason)
	} else if g.config.InjectionCount > 0 && g.stagnantCount >= 2 {
		// Inject some life to try to break the stagnation
		g.population = g.engine.InjectRandomLife(g.population, g.config.InjectionCount, g.generation, g.rng)
		g.logger.Debug("injected random life", "generation", g.generation, "count", g.config.InjectionCount)
	}

	next := g.engine.Step(g.population, g.generation)
	if every := g.config.VerifyEvery; every > 0 && g.generation%every == 0 {
		if err := g.engine.Verify(g.population, next, g.pool); err != nil {
			g.logger.Error("dense cross-check failed", "generation", g.generation, "error", err)
			g.verifyFailures++
		}
	}
	g.population = next
	g.generation++
	return false
}

// handle applies a user command, reporting true when the loop should stop
func (g *game) handle(cmd command) bool {
	switch cmd {
	case cmdQuit:
		return true
	case cmdPause:
		g.paused = !g.paused
		livingCells := len(g.population)
		status := "Paused"
		if !g.paused {
			status = "Resumed"
		}
		g.renderer.Display(g.population, g.generation, g.statusLine(livingCells, status))
	case cmdReseed:
		g.restartGame("reseed requested")
	}
	return false
}

// loop drives the simulation at the configured tick interval until ctx is
// done, a quit command arrives or the generation limit is reached
func (g *game) loop(ctx context.Context, commands <-chan command) error {
	interval := time.Duration(g.config.TickInterval)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd, ok := <-commands:
			if !ok || g.handle(cmd) {
				return nil
			}
			if cmd == cmdPause && !g.paused {
				timer.Reset(interval)
			}
		case <-timer.C:
			// the timer stays idle while paused
			if g.paused {
				continue
			}
			if g.tick() {
				return nil
			}
			timer.Reset(interval)
		}
	}
}

// keyCommand maps a key press to a command
func keyCommand(ev *tcell.EventKey) (command, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return cmdQuit, true
		case ' ', 'p':
			return cmdPause, true
		case 'r':
			return cmdReseed, true
		}
	}
	return 0, false
}

// pollInput forwards key presses as commands until the screen is interrupted or a quit key is pressed
func pollInput(ctx context.Context, screen tcell.Screen, commands chan<- command) error {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil, *tcell.EventInterrupt:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			cmd, ok := keyCommand(ev)
			if !ok {
				continue
			}
			select {
			case commands <- cmd:
			case <-ctx.Done():
				return nil
			}
			if cmd == cmdQuit {
				return nil
			}
		}
	}
}
