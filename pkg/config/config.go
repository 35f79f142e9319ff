// Package config handles application configuration.
//
// It provides:
//   - Flag parsing with CLI arguments
//   - Environment variable support (with CLI override)
//   - Configuration validation
//   - Precedence: CLI flags > environment variables > defaults
//
// Supported environment variables:
//   - ICOMFORT_USERNAME: Cloud service account username
//   - ICOMFORT_PASSWORD: Cloud service account password
//   - ICOMFORT_SERVICE: Vendor service (lennox or airease)
//   - ICOMFORT_SYSTEM: System index on the account
//   - ICOMFORT_ZONE: Zone index within the system
//   - ICOMFORT_UNITS: Temperature units (F, C, or device)
//   - ICOMFORT_PORT: HTTP server port (exporter only)
//   - ICOMFORT_SCRAPE_TIMEOUT: Timeout for API requests (seconds)
//   - ICOMFORT_LOG_LEVEL: Logging level (debug, info, warn, error)
//   - ICOMFORT_LOG_FORMAT: Logging format (json or text)
//
// Example usage:
//
//	cfg := config.Load()
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Config holds the application configuration
type Config struct {
	// Account credentials
	Username string
	Password string

	// Thermostat addressing
	Service string
	System  int
	Zone    int
	Units   string

	// Server configuration (exporter)
	Port int

	// Collection configuration
	ScrapeTimeout int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load parses environment variables and command-line flags and returns a Config
// Precedence: CLI flags > environment variables > defaults
func Load() *Config {
	return LoadWithArgs(os.Args[1:])
}

// LoadWithArgs loads configuration with explicit arguments (useful for testing)
func LoadWithArgs(args []string) *Config {
	cfg := &Config{}

	// Read environment variables
	envUsername := os.Getenv("ICOMFORT_USERNAME")
	envPassword := os.Getenv("ICOMFORT_PASSWORD")
	envService := os.Getenv("ICOMFORT_SERVICE")
	envSystem := os.Getenv("ICOMFORT_SYSTEM")
	envZone := os.Getenv("ICOMFORT_ZONE")
	envUnits := os.Getenv("ICOMFORT_UNITS")
	envPort := os.Getenv("ICOMFORT_PORT")
	envScrapeTimeout := os.Getenv("ICOMFORT_SCRAPE_TIMEOUT")
	envLogLevel := os.Getenv("ICOMFORT_LOG_LEVEL")
	envLogFormat := os.Getenv("ICOMFORT_LOG_FORMAT")

	if envService == "" {
		envService = "lennox"
	}
	if envUnits == "" {
		envUnits = "device"
	}
	if envPort == "" {
		envPort = "9552"
	}
	if envScrapeTimeout == "" {
		envScrapeTimeout = "10"
	}
	if envLogLevel == "" {
		envLogLevel = "info"
	}
	if envLogFormat == "" {
		envLogFormat = "text"
	}

	// Create a new FlagSet for this invocation (allows multiple calls in tests)
	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	// Parse command-line flags (these override env vars)
	fs.StringVar(&cfg.Username, "username", envUsername, "Cloud service account username (env: ICOMFORT_USERNAME, required)")
	fs.StringVar(&cfg.Password, "password", envPassword, "Cloud service account password (env: ICOMFORT_PASSWORD, required)")
	fs.StringVar(&cfg.Service, "service", envService, "Vendor service: lennox or airease (env: ICOMFORT_SERVICE)")
	fs.IntVar(&cfg.System, "system", parseEnvInt(envSystem, 0), "System index on the account (env: ICOMFORT_SYSTEM)")
	fs.IntVar(&cfg.Zone, "zone", parseEnvInt(envZone, 0), "Zone index within the system (env: ICOMFORT_ZONE)")
	fs.StringVar(&cfg.Units, "units", envUnits, "Temperature units: F, C or device (env: ICOMFORT_UNITS)")
	fs.IntVar(&cfg.Port, "port", parseEnvInt(envPort, 9552), "HTTP server listen port (env: ICOMFORT_PORT)")
	fs.IntVar(&cfg.ScrapeTimeout, "scrape-timeout", parseEnvInt(envScrapeTimeout, 10), "Maximum time in seconds to wait for API response (env: ICOMFORT_SCRAPE_TIMEOUT)")
	fs.StringVar(&cfg.LogLevel, "log-level", envLogLevel, "Logging verbosity: debug, info, warn, error (env: ICOMFORT_LOG_LEVEL)")
	fs.StringVar(&cfg.LogFormat, "log-format", envLogFormat, "Logging format: json or text (env: ICOMFORT_LOG_FORMAT)")

	// FlagSet is configured with ContinueOnError, so parse errors are handled gracefully
	_ = fs.Parse(args)

	return cfg
}

// parseEnvInt parses an environment variable as an integer, returning default if invalid
func parseEnvInt(envValue string, defaultValue int) int {
	if envValue == "" {
		return defaultValue
	}
	var result int
	_, err := fmt.Sscanf(envValue, "%d", &result)
	if err != nil {
		return defaultValue
	}
	return result
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("username is required (use -username flag or ICOMFORT_USERNAME env var)")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required (use -password flag or ICOMFORT_PASSWORD env var)")
	}

	switch strings.ToLower(c.Service) {
	case "lennox", "airease":
	default:
		return fmt.Errorf("invalid service: %s (must be lennox or airease)", c.Service)
	}

	if c.System < 0 {
		return fmt.Errorf("invalid system index: %d (must be non-negative)", c.System)
	}
	if c.Zone < 0 {
		return fmt.Errorf("invalid zone index: %d (must be non-negative)", c.Zone)
	}

	switch strings.ToLower(c.Units) {
	case "f", "c", "device":
	default:
		return fmt.Errorf("invalid units: %s (must be F, C or device)", c.Units)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}

	if c.ScrapeTimeout < 1 {
		return fmt.Errorf("invalid scrape-timeout: %d (must be at least 1 second)", c.ScrapeTimeout)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log-level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("invalid log-format: %s (must be json or text)", c.LogFormat)
	}

	return nil
}

// String returns a string representation of the config (without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf("Config{Username: %s, Service: %s, System: %d, Zone: %d, Units: %s, Port: %d, ScrapeTimeout: %ds, LogLevel: %s}",
		c.Username, c.Service, c.System, c.Zone, c.Units, c.Port, c.ScrapeTimeout, c.LogLevel)
}
