package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	DB        DBConfig        `yaml:"db"`
	Data      DataConfig      `yaml:"data"`
	Cache     CacheConfig     `yaml:"cache"`
	Places    PlacesConfig    `yaml:"places"`
	Request   RequestConfig   `yaml:"request"`
	Directory DirectoryConfig `yaml:"directory"`
	Export    ExportConfig    `yaml:"export"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server   LogTarget `yaml:"server"`
	Requests LogTarget `yaml:"requests"`
}

// LogTarget is one log destination.
type LogTarget struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DBConfig holds database settings.
type DBConfig struct {
	Path string `yaml:"path"`
}

// DataConfig holds static data locations.
type DataConfig struct {
	CompaniesPath string `yaml:"companies_path"`
	PhotoDir      string `yaml:"photo_dir"`
}

// CacheConfig holds place-cache settings.
type CacheConfig struct {
	DiskPath string   `yaml:"disk_path"`
	TTL      Duration `yaml:"ttl"`
}

// PlacesConfig selects and tunes the live places provider.
type PlacesConfig struct {
	// Provider is "google", "serpapi" or "searchapi".
	Provider string `yaml:"provider"`
	// Enabled gates all live provider calls. When false the service is
	// cache-only.
	Enabled bool `yaml:"enabled"`
	// Key is the provider API key. Usually left empty here and supplied
	// via PLACES_API_KEY.
	Key string `yaml:"key"`

	Prefetch      bool     `yaml:"prefetch"`
	PrefetchDelay Duration `yaml:"prefetch_delay"`
}

// RequestConfig holds outbound HTTP settings.
type RequestConfig struct {
	Timeout Duration      `yaml:"timeout"`
	Backoff BackoffConfig `yaml:"backoff"`
}

// BackoffConfig holds exponential backoff settings.
type BackoffConfig struct {
	BaseDelay Duration `yaml:"base_delay"`
	MaxDelay  Duration `yaml:"max_delay"`
}

// DirectoryConfig tunes directory rendering.
type DirectoryConfig struct {
	// PinnedCities are listed first, in this order; all other cities keep
	// their first-seen order.
	PinnedCities []string `yaml:"pinned_cities"`
}

// ExportConfig holds submission mirroring settings.
type ExportConfig struct {
	Sheets SheetsConfig `yaml:"sheets"`
	Feishu FeishuConfig `yaml:"feishu"`
}

// SheetsConfig holds Google Sheets mirroring settings.
type SheetsConfig struct {
	Enabled         bool   `yaml:"enabled"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	SheetRange      string `yaml:"sheet_range"`
	CredentialsFile string `yaml:"credentials_file"`
}

// FeishuConfig holds Feishu Bitable mirroring settings.
type FeishuConfig struct {
	Enabled   bool   `yaml:"enabled"`
	AppID     string `yaml:"app_id"`
	AppSecret string `yaml:"app_secret"`
	AppToken  string `yaml:"app_token"`
	TableID   string `yaml:"table_id"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: "127.0.0.1:8787"},
		Log: LogConfig{
			Server:   LogTarget{Path: "logs/server.log", Level: "INFO"},
			Requests: LogTarget{Path: "logs/requests.log", Level: "INFO"},
		},
		DB: DBConfig{Path: "data/huangye.db"},
		Data: DataConfig{
			CompaniesPath: "data/companies.json",
			PhotoDir:      "image/place-photos",
		},
		Cache: CacheConfig{
			DiskPath: "data/places-cache.json",
			TTL:      Duration(7 * Day),
		},
		Places: PlacesConfig{
			Provider:      "google",
			Enabled:       false,
			Prefetch:      false,
			PrefetchDelay: Duration(1200 * time.Millisecond),
		},
		Request: RequestConfig{
			Timeout: Duration(20 * time.Second),
			Backoff: BackoffConfig{
				BaseDelay: Duration(1 * time.Second),
				MaxDelay:  Duration(60 * time.Second),
			},
		},
		Directory: DirectoryConfig{
			PinnedCities: []string{"墨西哥城", "坎昆"},
		},
		Export: ExportConfig{
			Sheets: SheetsConfig{SheetRange: "Sheet1!A:G"},
		},
	}
}

// Load reads the config file at path, creating it with defaults when absent.
// Provider and export secrets fall back to the environment so they never have
// to live in the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to save config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv fills secrets from the environment when the file left them empty.
// Values from the environment are never written back to disk.
func (c *Config) applyEnv() {
	if c.Places.Key == "" {
		c.Places.Key = os.Getenv("PLACES_API_KEY")
	}
	if c.Export.Sheets.CredentialsFile == "" {
		c.Export.Sheets.CredentialsFile = os.Getenv("SHEETS_CREDENTIALS_FILE")
	}
	if c.Export.Feishu.AppID == "" {
		c.Export.Feishu.AppID = os.Getenv("FEISHU_APP_ID")
	}
	if c.Export.Feishu.AppSecret == "" {
		c.Export.Feishu.AppSecret = os.Getenv("FEISHU_APP_SECRET")
	}
}

func (c *Config) validate() error {
	switch c.Places.Provider {
	case "google", "serpapi", "searchapi":
	default:
		return fmt.Errorf("invalid places provider '%s': must be google, serpapi or searchapi", c.Places.Provider)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", time.Duration(c.Cache.TTL))
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// GenerateDefault writes a default config file unless one already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
