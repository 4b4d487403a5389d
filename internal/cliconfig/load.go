package cliconfig

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Load resolves cfg from the config file, STEAM_* variables and the flags in
// fs, in increasing order of precedence. An empty path selects
// DefaultConfigPath; a missing default file is not an error.
func Load(cfg *Config, path string, fs *pflag.FlagSet) error {
	changed := map[string]bool{}
	if fs != nil {
		fs.Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" && (explicit || FileExists(path)) {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}
	return cfg.Validate()
}

// BindFlags registers the shared configuration flags on fs.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.TablesDir, "tables-dir", cfg.TablesDir, "directory with property table files (default: embedded tables)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console, json)")
	fs.IntVar(&cfg.Precision, "precision", cfg.Precision, "significant digits in text output")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "output format (text, json)")
	fs.BoolVar(&cfg.LiquidApproximation, "liquid-approx", cfg.LiquidApproximation,
		"approximate compressed liquid below the subcooled table from saturated liquid")
}

// BindServeFlags registers the flags used only by the HTTP server.
func BindServeFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "HTTP listen address")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload tables when files in tables-dir change")
	fs.DurationVar(&cfg.WatchDebounce, "watch-debounce", cfg.WatchDebounce, "delay between a table change and the reload")
}
