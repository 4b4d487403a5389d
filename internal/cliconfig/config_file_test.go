package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				TablesDir:           "/file/tables",
				LogFormat:           "json",
				ListenAddr:          ":9090",
				ShutdownTimeout:     "5s",
				Precision:           4,
				Watch:               &trueVal,
				LiquidApproximation: &falseVal,
			},
			changed: map[string]bool{},
			initial: Config{LiquidApproximation: true},
			expected: Config{
				TablesDir:       "/file/tables",
				LogFormat:       "json",
				ListenAddr:      ":9090",
				ShutdownTimeout: 5 * time.Second,
				Precision:       4,
				Watch:           true,
			},
		},
		{
			name:       "respects changed flags",
			fileConfig: FileConfig{ListenAddr: ":9090", Precision: 4},
			changed:    map[string]bool{"listen": true},
			initial:    Config{ListenAddr: ":7070"},
			expected:   Config{ListenAddr: ":7070", Precision: 4},
		},
		{
			name:       "returns error for invalid duration",
			fileConfig: FileConfig{WatchDebounce: "later"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyFileConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	content := `
tables_dir = "/srv/steam"
log_level = "warn"
precision = 9
watch = true
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}
	if fc.TablesDir != "/srv/steam" {
		t.Errorf("TablesDir = %v, want /srv/steam", fc.TablesDir)
	}
	if fc.Precision != 9 {
		t.Errorf("Precision = %v, want 9", fc.Precision)
	}
	if fc.Watch == nil || !*fc.Watch {
		t.Errorf("Watch = %v, want true", fc.Watch)
	}

	if err := os.WriteFile(configPath, []byte("precision = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFileConfig(configPath); err == nil {
		t.Error("LoadFileConfig() on malformed TOML returned nil error")
	}
}

func TestLoad_Precedence(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	content := `
listen = ":1111"
precision = 3
output = "json"
log_level = "debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STEAM_LISTEN", ":2222")
	t.Setenv("STEAM_PRECISION", "4")

	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs, &cfg)
	BindServeFlags(fs, &cfg)
	if err := fs.Parse([]string{"--precision=5"}); err != nil {
		t.Fatal(err)
	}

	if err := Load(&cfg, configPath, fs); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Precision != 5 {
		t.Errorf("Precision = %v, want flag value 5", cfg.Precision)
	}
	if cfg.ListenAddr != ":2222" {
		t.Errorf("ListenAddr = %v, want env value :2222", cfg.ListenAddr)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("Output = %v, want file value json", cfg.Output)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want file value debug", cfg.LogLevel)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	cfg := DefaultConfig()
	if err := Load(&cfg, filepath.Join(t.TempDir(), "nope.toml"), nil); err == nil {
		t.Error("Load() with missing explicit file returned nil error")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/steam")
	if got, want := DefaultConfigPath(), filepath.Join("/home/steam", ".sandlersteam", "config.toml"); got != want {
		t.Errorf("DefaultConfigPath() = %v, want %v", got, want)
	}
}
