package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "cutedoc.yml"

type Config struct {
	Port string `koanf:"port"`

	// Documentation tree
	DocsDir    string `koanf:"docs_dir"`
	OutputDir  string `koanf:"output_dir"`
	ImagesPath string `koanf:"images_path"`

	// Page enhancement
	WholeWordKeywords bool `koanf:"whole_word_keywords"`

	// Preference cookies
	PrefsTTLDays int `koanf:"prefs_ttl_days"`

	// Auth for the build API; empty leaves it open
	APIKey string `koanf:"api_key"`

	// Origins allowed to call the API from a browser; empty disables CORS
	CORSOrigins []string `koanf:"cors_origins"`

	// Worker pool
	WorkerCount  int `koanf:"worker_count"`
	MaxQueueSize int `koanf:"max_queue_size"`

	// Build filters (doublestar globs, relative to DocsDir)
	Include []string `koanf:"include"`
	Exclude []string `koanf:"exclude"`

	// Watch mode
	WatchDebounceMs int `koanf:"watch_debounce_ms"`

	// Job state
	JobTTL time.Duration `koanf:"job_ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:            "8090",
		DocsDir:         "docs",
		OutputDir:       "public",
		ImagesPath:      "images/",
		PrefsTTLDays:    0, // session cookies
		WorkerCount:     4,
		MaxQueueSize:    1000,
		WatchDebounceMs: 200,
		JobTTL:          1 * time.Hour,
	}
}

// Load reads defaults, then the YAML file at path if it exists, then
// CUTEDOC_* environment overrides (CUTEDOC_DOCS_DIR -> docs_dir).
func Load(path string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("CUTEDOC_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CUTEDOC_"))
	}), nil); err != nil {
		return cfg, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshalling config: %w", err)
	}

	// PORT is honoured for compatibility with container platforms.
	if v := os.Getenv("PORT"); v != "" && !k.Exists("port") {
		cfg.Port = v
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 1000
	}
	if cfg.WatchDebounceMs <= 0 {
		cfg.WatchDebounceMs = 200
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.ImagesPath == "" {
		cfg.ImagesPath = "images/"
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.DocsDir == "" {
		return fmt.Errorf("docs_dir is required")
	}
	info, err := os.Stat(c.DocsDir)
	if err != nil {
		return fmt.Errorf("docs_dir %s: %w", c.DocsDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("docs_dir %s is not a directory", c.DocsDir)
	}
	if c.PrefsTTLDays < 0 {
		return fmt.Errorf("prefs_ttl_days must be non-negative")
	}
	return nil
}

// ValidateBuild additionally checks the settings a batch build needs.
func (c Config) ValidateBuild() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	return nil
}
