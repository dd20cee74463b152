package app

import (
	"io"
	"log/slog"

	"github.com/agobeyn/figaro/internal/registry"
)

// App encapsulates the engine's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
}

// NewApp constructs a fully initialized App with its own isolated logger
// and generator registry. When no modules are passed the built-in generator
// set is registered.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg, outW)

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All generator modules registered.", "count", len(modules), "generators", reg.Names())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
	}
}

// Registry returns the application's generator registry. This is primarily
// for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
