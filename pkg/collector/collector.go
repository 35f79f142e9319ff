// Package collector implements the Prometheus collector for thermostat
// metrics.
//
// It provides:
//   - Prometheus collector interface implementation
//   - On-demand status pulls from the iComfort cloud service
//   - Graceful error handling that keeps last known values on failure
//   - Exporter health metrics reporting
//
// The collector pulls thermostat status when Prometheus scrapes the
// /metrics endpoint. A failed pull leaves the previously collected gauge
// values in place, so alerting keeps working across transient vendor
// outages.
package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/thevoltagesource/myicomfort/pkg/icomfort"
	"github.com/thevoltagesource/myicomfort/pkg/logger"
	"github.com/thevoltagesource/myicomfort/pkg/metrics"
)

// ThermostatCollector implements the prometheus.Collector interface.
// It pulls thermostat status on-demand when Prometheus scrapes /metrics.
type ThermostatCollector struct {
	api               ThermostatAPI
	metricDescriptors *metrics.MetricDescriptors
	scrapeTimeout     time.Duration
	labels            []string // service, system, zone
	log               *logger.Logger
	exporterMetrics   *metrics.ExporterMetrics // Optional: for internal health monitoring
}

// NewThermostatCollector creates a new thermostat metrics collector.
// The service, system and zone values become the labels on every zone
// metric.
func NewThermostatCollector(
	api ThermostatAPI,
	metricDescriptors *metrics.MetricDescriptors,
	scrapeTimeout time.Duration,
	service string,
	system int,
	zone int,
	log *logger.Logger,
) *ThermostatCollector {
	// Use noop logger if none provided
	if log == nil {
		noop, _ := logger.NewWithWriter("error", "text", io.Discard)
		log = noop
	}

	return &ThermostatCollector{
		api:               api,
		metricDescriptors: metricDescriptors,
		scrapeTimeout:     scrapeTimeout,
		labels:            []string{service, fmt.Sprintf("%d", system), fmt.Sprintf("%d", zone)},
		log:               log,
	}
}

// WithExporterMetrics adds exporter health metrics to the collector
func (tc *ThermostatCollector) WithExporterMetrics(em *metrics.ExporterMetrics) *ThermostatCollector {
	tc.exporterMetrics = em
	return tc
}

// Describe sends the super-set of all possible descriptors of metrics collected by this collector
func (tc *ThermostatCollector) Describe(ch chan<- *prometheus.Desc) {
	tc.metricDescriptors.Describe(ch)
	if tc.exporterMetrics != nil {
		tc.exporterMetrics.Describe(ch)
	}
}

// Collect is called by the Prometheus client when scraping /metrics.
// It pulls current thermostat status and sends gauge values to the channel.
func (tc *ThermostatCollector) Collect(ch chan<- prometheus.Metric) {
	// Create context with timeout to prevent hanging requests
	ctx, cancel := context.WithTimeout(context.Background(), tc.scrapeTimeout)
	defer cancel()

	startTime := time.Now()
	if err := tc.pullAndRecord(ctx); err != nil {
		tc.log.Warn("Failed to collect thermostat metrics", "error", err.Error())
		// Don't return - Prometheus will use last known values
	}
	if tc.exporterMetrics != nil {
		tc.exporterMetrics.RecordScrapeDuration(time.Since(startTime).Seconds())
	}

	tc.metricDescriptors.Collect(ch)
	if tc.exporterMetrics != nil {
		tc.exporterMetrics.Collect(ch)
	}
}

// pullAndRecord pulls the thermostat status and updates gauge values
func (tc *ThermostatCollector) pullAndRecord(ctx context.Context) error {
	snapshot, err := tc.api.PullStatus(ctx)
	if err != nil {
		if tc.exporterMetrics != nil {
			tc.exporterMetrics.IncrementScrapeErrors()
			var authErr *icomfort.AuthError
			if errors.As(err, &authErr) {
				tc.exporterMetrics.IncrementAuthenticationErrors()
				tc.exporterMetrics.SetAuthenticationValid(false)
			}
		}
		return err
	}
	if snapshot == nil {
		if tc.exporterMetrics != nil {
			tc.exporterMetrics.IncrementScrapeErrors()
		}
		return fmt.Errorf("pull returned no snapshot")
	}

	if tc.exporterMetrics != nil {
		tc.exporterMetrics.SetAuthenticationValid(true)
		tc.exporterMetrics.RecordPullSuccess()
	}

	tc.recordSnapshot(snapshot)
	return nil
}

// recordSnapshot updates gauge values from a snapshot, skipping fields
// the service did not report.
func (tc *ThermostatCollector) recordSnapshot(snapshot *icomfort.Snapshot) {
	if snapshot.CurrentTemperature != nil {
		tc.metricDescriptors.TemperatureCurrent.WithLabelValues(tc.labels...).Set(*snapshot.CurrentTemperature)
	}
	if snapshot.CurrentHumidity != nil {
		tc.metricDescriptors.HumidityCurrent.WithLabelValues(tc.labels...).Set(*snapshot.CurrentHumidity)
	}
	if snapshot.HeatSetpoint != nil {
		tc.metricDescriptors.HeatSetpoint.WithLabelValues(tc.labels...).Set(*snapshot.HeatSetpoint)
	}
	if snapshot.CoolSetpoint != nil {
		tc.metricDescriptors.CoolSetpoint.WithLabelValues(tc.labels...).Set(*snapshot.CoolSetpoint)
	}
	if snapshot.OperationMode != nil {
		tc.metricDescriptors.OperationMode.WithLabelValues(tc.labels...).Set(float64(*snapshot.OperationMode))
	}
	if snapshot.FanMode != nil {
		tc.metricDescriptors.FanMode.WithLabelValues(tc.labels...).Set(float64(*snapshot.FanMode))
	}
	if snapshot.SystemStatus != nil {
		tc.metricDescriptors.SystemStatus.WithLabelValues(tc.labels...).Set(float64(*snapshot.SystemStatus))
	}
	if snapshot.AwayMode != nil {
		away := 0.0
		if *snapshot.AwayMode {
			away = 1.0
		}
		tc.metricDescriptors.AwayMode.WithLabelValues(tc.labels...).Set(away)
	}
}
