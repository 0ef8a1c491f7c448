package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kersk/ballista/internal/config"
	"github.com/kersk/ballista/internal/core/event"
	coresys "github.com/kersk/ballista/internal/core/system"
	"github.com/kersk/ballista/internal/data"
	"github.com/kersk/ballista/internal/pool"
	"github.com/kersk/ballista/internal/scripting"
	"github.com/kersk/ballista/internal/system"
	"github.com/kersk/ballista/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            ballista  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       projectile pool arena sim           \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 45 - len(title)
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ─────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/ballista.toml"
	if p := os.Getenv("BALLISTA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Optional profiling
	switch cfg.Profile.Mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	// 4. Load static data
	printSection("data")

	templateTable, err := data.LoadTemplateTable(cfg.Paths.Templates)
	if err != nil {
		return fmt.Errorf("load projectile templates: %w", err)
	}
	printStat("projectile templates", templateTable.Count())

	src, err := data.NewTemplateSource(templateTable)
	if err != nil {
		return fmt.Errorf("template source: %w", err)
	}
	defer src.Close()

	scenario, err := data.LoadScenario(cfg.Paths.Scenario)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	printStat("emitters", len(scenario.Emitters))

	// 5. Lua scripting engine
	engine, err := scripting.NewEngine(cfg.Paths.Scripts, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer engine.Close()
	printOK("lua scripts loaded")

	// 6. World state + projectile pool
	state := world.NewState()
	projectilePool := pool.New("projectiles", world.NewFactory(state, src), log)
	if err := projectilePool.Prewarm(world.PrewarmCapacity); err != nil {
		return fmt.Errorf("prewarm projectile pool: %w", err)
	}
	projectiles := world.NewProjectiles(projectilePool, state, log)
	printStat("pool prewarmed", projectiles.Count())
	fmt.Println()

	// 7. Systems
	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	bus := event.NewBus()

	runner := coresys.NewRunner()
	emitterSys, err := system.NewEmitterSystem(projectiles, scenario, src, bus, rng, log)
	if err != nil {
		return fmt.Errorf("emitter system: %w", err)
	}
	runner.Register(emitterSys)
	runner.Register(system.NewFlightSystem(state, projectiles, scenario.Arena, bus))
	runner.Register(system.NewEffectsSystem(bus, engine, src, log))
	runner.Register(system.NewStatsSystem(state, projectiles, log))

	// 8. Metrics endpoint
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: cfg.Metrics.Listen, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server", zap.Error(err))
			}
		}()
		defer srv.Close()
		printOK("metrics on http://" + cfg.Metrics.Listen + "/metrics")
	}

	// 9. Tick loop
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printReady(fmt.Sprintf("simulating at %s per tick", cfg.Sim.TickRate))
	fmt.Println()
	log.Info("simulation started",
		zap.Duration("tick_rate", cfg.Sim.TickRate),
		zap.Int64("seed", seed))

	ticker := time.NewTicker(cfg.Sim.TickRate)
	defer ticker.Stop()

	started := time.Now()
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			runner.Tick(cfg.Sim.TickRate)
			if cfg.Sim.Duration > 0 && time.Since(started) >= cfg.Sim.Duration {
				break loop
			}
		}
	}

	log.Info("simulation stopped",
		zap.Duration("ran", time.Since(started)),
		zap.Int("idle", projectiles.Count()),
		zap.Int("in_flight", state.InFlight()),
		zap.Uint64("exhaustions", projectiles.Exhaustions()))
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
