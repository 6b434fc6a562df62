package main

import (
	"context"
	"os"

	"github.com/desertthunder/discover/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := ""
	if _, err := os.Stat(defaultConfigPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(defaultConfigPath); err == nil {
			config = loadedConfig
			configPath = defaultConfigPath
		} else {
			logger.Warn("failed to load config, using defaults", "path", defaultConfigPath, "error", err)
		}
	}
	config.ApplyEnv()

	if level, err := shared.ParseLogLevel(config.Log.Level); err == nil {
		shared.SetLogLevel(logger, level)
	} else {
		logger.Warn("ignoring log level", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Logger:     logger,
		ConfigPath: configPath,
	})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
