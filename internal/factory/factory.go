package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/UzayAnil/swiftcode/internal/catalog"
	"github.com/UzayAnil/swiftcode/internal/dependencies/clock"
	"github.com/UzayAnil/swiftcode/internal/dependencies/keylock"
	"github.com/UzayAnil/swiftcode/internal/dependencies/names"
	"github.com/UzayAnil/swiftcode/internal/dependencies/random"
	"github.com/UzayAnil/swiftcode/internal/events"
	"github.com/UzayAnil/swiftcode/internal/model"
	"github.com/UzayAnil/swiftcode/internal/services/auth"
	"github.com/UzayAnil/swiftcode/internal/services/game"
	"github.com/UzayAnil/swiftcode/internal/services/membership"
	"github.com/UzayAnil/swiftcode/internal/services/stats"
	"github.com/UzayAnil/swiftcode/internal/services/timer"
	"github.com/UzayAnil/swiftcode/internal/services/typeable"
	"github.com/UzayAnil/swiftcode/internal/storage"
	"github.com/UzayAnil/swiftcode/internal/storage/memory"
	redisstorage "github.com/UzayAnil/swiftcode/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Names  *names.Generator

	// Infrastructure
	Bus    *events.Bus
	Timers timer.Registry
	Locks  *keylock.KeyedMutex

	// Reference data
	Catalog *catalog.Catalog

	// Services
	TypeableService *typeable.Service
	GameController  *game.Controller
	Membership      *membership.Coordinator
	StatsService    *stats.Service
	AuthService     *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger; a discard logger is used if nil
	Logger *slog.Logger
	// StorageType selects the storage backend; defaults to memory
	StorageType string
	// RedisConfig must be set when StorageType is redis
	RedisConfig *redisstorage.Config
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
	// NameSeed is the starting point for anonymous display names
	NameSeed int64
}

// New creates a fully wired application
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	switch cfg.StorageType {
	case "", StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is 'redis'")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()
	timers := timer.New(logger)

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, timers, authCfg, cfg.NameSeed, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	timers timer.Registry,
	authCfg auth.Config,
	nameSeed int64,
	logger *slog.Logger,
) *App {
	bus := events.NewBus(logger)
	locks := keylock.New()
	nameGen := names.New(nameSeed)
	cat := catalog.New()

	typeableService := typeable.New(logger)
	gameController := game.NewController(store, timers, bus, clk, locks, logger)
	coordinator := membership.NewCoordinator(store, gameController, cat, bus, clk, rnd, logger)
	statsService := stats.New(store, gameController, bus, clk, logger)
	authService := auth.New(store, clk, nameGen, authCfg)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Names:           nameGen,
		Bus:             bus,
		Timers:          timers,
		Locks:           locks,
		Catalog:         cat,
		TypeableService: typeableService,
		GameController:  gameController,
		Membership:      coordinator,
		StatsService:    statsService,
		AuthService:     authService,
	}
}

// Recover performs the startup maintenance pass: a restart orphans every
// in-flight game and anonymous account, so they are cleaned before serving
func (a *App) Recover(ctx context.Context) error {
	if err := a.Storage.ClearCurrentGames(ctx); err != nil {
		return err
	}
	if err := a.Storage.DeleteAnonymousPlayers(ctx); err != nil {
		return err
	}
	return a.Storage.CompleteStaleGames(ctx)
}

// SeedExercises prepares and stores the built-in exercises
func (a *App) SeedExercises(ctx context.Context) error {
	now := a.Clock.Now()
	for _, seed := range a.Catalog.SeedExercises() {
		lang, err := a.Catalog.Language(seed.Language)
		if err != nil {
			return err
		}
		prepared, err := a.TypeableService.Prepare(seed.Code, lang.Lexer)
		if err != nil {
			return err
		}
		exercise := model.NewExercise(
			model.ExerciseID(seed.ID),
			seed.Language,
			seed.Name,
			seed.Code,
			prepared.TypeableText,
			prepared.TypeableCount,
			now,
		)
		if err := a.Storage.SaveExercise(ctx, exercise); err != nil {
			return err
		}
	}
	return nil
}
