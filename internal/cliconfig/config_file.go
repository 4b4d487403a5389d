package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	TablesDir           string `toml:"tables_dir"`
	LogLevel            string `toml:"log_level"`
	LogFormat           string `toml:"log_format"`
	ListenAddr          string `toml:"listen"`
	ShutdownTimeout     string `toml:"shutdown_timeout"`
	Watch               *bool  `toml:"watch"`
	WatchDebounce       string `toml:"watch_debounce"`
	Precision           int    `toml:"precision"`
	Output              string `toml:"output"`
	LiquidApproximation *bool  `toml:"liquid_approximation"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.sandlersteam/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".sandlersteam", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("tables-dir", fc.TablesDir, &cfg.TablesDir)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)
	s.setString("listen", fc.ListenAddr, &cfg.ListenAddr)
	s.setString("output", fc.Output, &cfg.Output)

	if err := s.setDuration("shutdown-timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}
	if err := s.setDuration("watch-debounce", fc.WatchDebounce, &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setInt("precision", fc.Precision, &cfg.Precision)

	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("liquid-approx", fc.LiquidApproximation, &cfg.LiquidApproximation)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
