package main

import (
	"fmt"
	"os"

	"trade-journal/internal/cli"
	"trade-journal/internal/config"
	"trade-journal/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Console = cfg.Logging.Console
	logCfg.File = cfg.Logging.File
	if cfg.Logging.MaxSize > 0 {
		logCfg.MaxSize = cfg.Logging.MaxSize
	}
	if cfg.Logging.MaxBackups > 0 {
		logCfg.MaxBackups = cfg.Logging.MaxBackups
	}
	if cfg.Logging.MaxAge > 0 {
		logCfg.MaxAge = cfg.Logging.MaxAge
	}
	logger := logging.NewLoggerWithConfig(logCfg)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := cli.NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
