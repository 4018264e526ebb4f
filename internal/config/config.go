// Package config provides configuration loading and validation for the service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Store backend names accepted in configuration.
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
)

// Config represents the service configuration that can be loaded from a
// JSON file and overridden through environment variables. All fields are
// optional; missing values use defaults.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Record store
	StoreBackend     string `json:"store_backend,omitempty"`     // "sheets" or "postgres"
	DatabaseURL      string `json:"database_url,omitempty"`      // PostgreSQL connection URL
	SheetsCredential string `json:"sheets_credential,omitempty"` // Path to a service-account JSON key
	SpreadsheetID    string `json:"spreadsheet_id,omitempty"`    // Google Sheets spreadsheet ID

	// Capabilities
	GeminiAPIKey       string `json:"gemini_api_key,omitempty"`       // Gemini API key
	RecognizerModel    string `json:"recognizer_model,omitempty"`     // Entity-recognition model name
	EmbeddingModel     string `json:"embedding_model,omitempty"`      // Embedding model name
	NominatimURL       string `json:"nominatim_url,omitempty"`        // Geocoding endpoint base URL
	NominatimUserAgent string `json:"nominatim_user_agent,omitempty"` // User-Agent sent to the geocoder
	GeocodeTimeoutSec  int    `json:"geocode_timeout_sec,omitempty"`  // Per-call geocoding timeout
	TaxonomyPath       string `json:"taxonomy_path,omitempty"`        // Skill taxonomy JSON override file

	// Matching
	MatchTopN   int `json:"match_top_n,omitempty"` // Default match-list cap
	Parallelism int `json:"parallelism,omitempty"` // Concurrent per-candidate scoring

	// Behavior
	Verbose  bool `json:"verbose,omitempty"`   // Print detailed debug information
	JSONLogs bool `json:"json_logs,omitempty"` // Emit structured JSON logs
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills empty fields from environment variables. Environment
// values only apply where the file left a field unset, so file values
// win over ambient ones.
func (c *Config) FromEnv() error {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.StoreBackend == "" {
		c.StoreBackend = os.Getenv("STORE_BACKEND")
	}
	if c.SheetsCredential == "" {
		c.SheetsCredential = os.Getenv("SHEETS_CREDENTIAL")
	}
	if c.SpreadsheetID == "" {
		c.SpreadsheetID = os.Getenv("SPREADSHEET_ID")
	}
	if c.TaxonomyPath == "" {
		c.TaxonomyPath = os.Getenv("TAXONOMY_PATH")
	}
	if c.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return fmt.Errorf("invalid PORT: %v", err)
			}
			c.Port = port
		}
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.MatchTopN < 0 {
		return fmt.Errorf("config error: 'match_top_n' must be non-negative")
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("config error: 'parallelism' must be non-negative")
	}
	if c.GeocodeTimeoutSec < 0 {
		return fmt.Errorf("config error: 'geocode_timeout_sec' must be non-negative")
	}

	switch c.StoreBackend {
	case "", BackendSheets, BackendPostgres:
	default:
		return fmt.Errorf("config error: unknown store backend %q", c.StoreBackend)
	}

	if c.StoreBackend == BackendPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required for the postgres backend")
	}
	if c.StoreBackend == BackendSheets && c.SpreadsheetID == "" {
		return fmt.Errorf("config error: 'spreadsheet_id' is required for the sheets backend")
	}

	if c.SheetsCredential != "" {
		if _, err := os.Stat(c.SheetsCredential); os.IsNotExist(err) {
			return fmt.Errorf("config error: sheets credential file not found: %s", c.SheetsCredential)
		}
	}
	if c.TaxonomyPath != "" {
		if _, err := os.Stat(c.TaxonomyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: taxonomy file not found: %s", c.TaxonomyPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. This applies config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.StoreBackend == "" {
		result.StoreBackend = defaults.StoreBackend
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SheetsCredential == "" {
		result.SheetsCredential = defaults.SheetsCredential
	}
	if result.SpreadsheetID == "" {
		result.SpreadsheetID = defaults.SpreadsheetID
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.RecognizerModel == "" {
		result.RecognizerModel = defaults.RecognizerModel
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.NominatimURL == "" {
		result.NominatimURL = defaults.NominatimURL
	}
	if result.NominatimUserAgent == "" {
		result.NominatimUserAgent = defaults.NominatimUserAgent
	}
	if result.TaxonomyPath == "" {
		result.TaxonomyPath = defaults.TaxonomyPath
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MatchTopN == 0 {
		result.MatchTopN = defaults.MatchTopN
	}
	if result.Parallelism == 0 {
		result.Parallelism = defaults.Parallelism
	}
	if result.GeocodeTimeoutSec == 0 {
		result.GeocodeTimeoutSec = defaults.GeocodeTimeoutSec
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
