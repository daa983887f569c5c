package app

import (
	"io"
	"log/slog"

	"github.com/vk/nfsprofile/internal/config"
	"github.com/vk/nfsprofile/internal/hcl"
	"github.com/vk/nfsprofile/internal/yamlconf"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loaders []config.Loader
}

// NewApp is the constructor for the main application. Generated documents
// go to outW and logs to logW. Without explicit loaders the HCL and YAML
// loaders are used.
func NewApp(outW, logW io.Writer, appConfig *Config, loaders ...config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = []config.Loader{hcl.NewLoader(), yamlconf.NewLoader()}
	}

	return &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		loaders: loaders,
	}
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
