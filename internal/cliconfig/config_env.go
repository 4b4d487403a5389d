package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "STEAM_"

// ApplyEnvConfig applies configuration from environment variables (STEAM_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("tables-dir", os.Getenv(EnvPrefix+"TABLES_DIR"), &cfg.TablesDir)
	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv(EnvPrefix+"LOG_FORMAT"), &cfg.LogFormat)
	s.setString("listen", os.Getenv(EnvPrefix+"LISTEN"), &cfg.ListenAddr)
	s.setString("output", os.Getenv(EnvPrefix+"OUTPUT"), &cfg.Output)

	if err := s.setDuration("shutdown-timeout", os.Getenv(EnvPrefix+"SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}
	if err := s.setDuration("watch-debounce", os.Getenv(EnvPrefix+"WATCH_DEBOUNCE"), &cfg.WatchDebounce); err != nil {
		return err
	}
	if err := s.setIntFromString("precision", os.Getenv(EnvPrefix+"PRECISION"), &cfg.Precision); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv(EnvPrefix+"WATCH"), &cfg.Watch)
	s.setBoolFromString("liquid-approx", os.Getenv(EnvPrefix+"LIQUID_APPROX"), &cfg.LiquidApproximation)

	return nil
}
