package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/thevoltagesource/myicomfort/pkg/collector"
	"github.com/thevoltagesource/myicomfort/pkg/config"
	"github.com/thevoltagesource/myicomfort/pkg/icomfort"
	"github.com/thevoltagesource/myicomfort/pkg/logger"
	"github.com/thevoltagesource/myicomfort/pkg/metrics"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	log.Info("icomfort-exporter starting", "config", cfg.String())

	// Create context with graceful shutdown support
	ctx := SetupGracefulShutdown(log)

	thermostatCollector, err := buildCollector(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client initialization error: %v\n", err)
		os.Exit(1)
	}

	if err := StartServer(ctx, cfg, thermostatCollector, log); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// buildCollector wires the icomfort client, circuit breaker and metrics
// into a registerable collector. Login happens lazily on the first scrape
// so a vendor outage at startup does not kill the exporter.
func buildCollector(cfg *config.Config, log *logger.Logger) (*collector.ThermostatCollector, error) {
	client, err := icomfort.NewClient(cfg.Username, cfg.Password,
		icomfort.WithService(icomfort.Service(cfg.Service)),
		icomfort.WithSystem(cfg.System),
		icomfort.WithZone(cfg.Zone),
		icomfort.WithUnits(unitsFromConfig(cfg.Units)),
		icomfort.WithTimeout(time.Duration(cfg.ScrapeTimeout)*time.Second),
		icomfort.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create icomfort client: %w", err)
	}

	api := collector.NewThermostatAPIWithCircuitBreaker(
		collector.NewClientAdapter(client),
		collector.DefaultCircuitBreakerConfig(),
	)

	exporterMetrics := metrics.NewExporterMetrics()
	exporterMetrics.SetBuildInfo()

	scrapeTimeout := time.Duration(cfg.ScrapeTimeout) * time.Second
	thermostatCollector := collector.NewThermostatCollector(
		api,
		metrics.NewMetricDescriptors(),
		scrapeTimeout,
		cfg.Service,
		cfg.System,
		cfg.Zone,
		log,
	).WithExporterMetrics(exporterMetrics)

	return thermostatCollector, nil
}

// unitsFromConfig maps the config units string to the client enum.
func unitsFromConfig(units string) icomfort.TemperatureUnits {
	switch strings.ToLower(units) {
	case "f":
		return icomfort.Fahrenheit
	case "c":
		return icomfort.Celsius
	default:
		return icomfort.UseDeviceSetting
	}
}
