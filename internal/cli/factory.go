package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/modthree"
	"github.com/aretw0/automata/pkg/persistence/middleware"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/aretw0/automata/pkg/schema"
)

// LoadDefinition reads the definition at path. An empty path selects the
// built-in mod-three machine.
func LoadDefinition(path string) (schema.Definition, error) {
	if path == "" {
		return modthree.Definition(), nil
	}
	def, err := schema.Load(path)
	if err != nil {
		return schema.Definition{}, fmt.Errorf("failed to load definition: %w", err)
	}
	return def, nil
}

// NewLogger builds the process logger from the configuration. debug forces
// the debug level.
func NewLogger(cfg config.Config, debug bool) *slog.Logger {
	level := cfg.Level()
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithFormat(os.Stderr, level, cfg.LogFormat)
}

// NewStore selects the definition store: Redis when an address is configured,
// a YAML directory when a store dir is set, memory otherwise. The store is
// wrapped with logging and validation middleware.
// The returned close function is never nil.
func NewStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.DefinitionStore, func() error, error) {
	noop := func() error { return nil }
	wrap := func(store ports.DefinitionStore) ports.DefinitionStore {
		return middleware.Chain(store,
			middleware.NewLoggingMiddleware(logger),
			middleware.NewValidationMiddleware(),
		)
	}

	switch {
	case cfg.Redis.Addr != "":
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, noop, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("using redis definition store", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return wrap(store), store.Close, nil
	case cfg.StoreDir != "":
		logger.Info("using file definition store", "dir", cfg.StoreDir)
		return wrap(file.New(cfg.StoreDir)), noop, nil
	default:
		logger.Debug("using in-memory definition store")
		return wrap(memory.NewStore()), noop, nil
	}
}

// NewRegistry creates a registry over store, registers the mod-three machine
// and every definition found in cfg.DefinitionsDir.
func NewRegistry(ctx context.Context, cfg config.Config, store ports.DefinitionStore, logger *slog.Logger, opts ...automata.Option) (*registry.Registry, error) {
	reg := registry.New(store, opts...)

	if _, err := reg.Register(ctx, modthree.Definition()); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", modthree.Name, err)
	}

	if cfg.DefinitionsDir == "" {
		return reg, nil
	}

	defs, err := schema.LoadDir(cfg.DefinitionsDir)
	if err != nil {
		return nil, err
	}
	for _, def := range defs {
		if _, err := reg.Register(ctx, def); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", def.Name, err)
		}
		logger.Info("machine registered", "machine", def.Name)
	}
	return reg, nil
}
