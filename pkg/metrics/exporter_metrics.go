package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ExporterMetrics holds Prometheus metrics for exporter internal monitoring
type ExporterMetrics struct {
	// Scrape duration histogram (in seconds)
	ScrapeDurationSeconds prometheus.Histogram

	// Scrape error counter
	ScrapeErrorsTotal prometheus.Counter

	// Build info gauge
	BuildInfo prometheus.Gauge

	// Authentication status gauge (1 = valid, 0 = rejected)
	AuthenticationValid prometheus.Gauge

	// Authentication error counter
	AuthenticationErrorsTotal prometheus.Counter

	// Last successful status pull timestamp (unix seconds)
	LastPullSuccessUnix prometheus.Gauge
}

// NewExporterMetrics creates exporter health metrics. Like the thermostat
// descriptors, these are unregistered; the collector forwards them.
func NewExporterMetrics() *ExporterMetrics {
	return &ExporterMetrics{
		ScrapeDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "icomfort_exporter_scrape_duration_seconds",
			Help:    "Time taken to pull thermostat status from the cloud service in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 6),
		}),

		ScrapeErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "icomfort_exporter_scrape_errors_total",
			Help: "Total number of errors while pulling thermostat status",
		}),

		BuildInfo: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "icomfort_exporter_build_info",
			Help: "Build information for the exporter (value is always 1)",
		}),

		AuthenticationValid: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "icomfort_exporter_authentication_valid",
			Help: "Set to 1 if the cloud service accepts the configured credentials, 0 if rejected",
		}),

		AuthenticationErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "icomfort_exporter_authentication_errors_total",
			Help: "Total number of authentication failures against the cloud service",
		}),

		LastPullSuccessUnix: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "icomfort_exporter_last_pull_success_unix",
			Help: "Unix timestamp of the last successful status pull",
		}),
	}
}

// Describe sends all health metric descriptors to the channel.
func (em *ExporterMetrics) Describe(ch chan<- *prometheus.Desc) {
	em.ScrapeDurationSeconds.Describe(ch)
	em.ScrapeErrorsTotal.Describe(ch)
	em.BuildInfo.Describe(ch)
	em.AuthenticationValid.Describe(ch)
	em.AuthenticationErrorsTotal.Describe(ch)
	em.LastPullSuccessUnix.Describe(ch)
}

// Collect sends all current health metric values to the channel.
func (em *ExporterMetrics) Collect(ch chan<- prometheus.Metric) {
	em.ScrapeDurationSeconds.Collect(ch)
	em.ScrapeErrorsTotal.Collect(ch)
	em.BuildInfo.Collect(ch)
	em.AuthenticationValid.Collect(ch)
	em.AuthenticationErrorsTotal.Collect(ch)
	em.LastPullSuccessUnix.Collect(ch)
}

// RecordScrapeDuration records how long a status pull took
func (em *ExporterMetrics) RecordScrapeDuration(seconds float64) {
	em.ScrapeDurationSeconds.Observe(seconds)
}

// IncrementScrapeErrors increments the scrape error counter
func (em *ExporterMetrics) IncrementScrapeErrors() {
	em.ScrapeErrorsTotal.Inc()
}

// SetBuildInfo marks the exporter as running
func (em *ExporterMetrics) SetBuildInfo() {
	em.BuildInfo.Set(1)
}

// SetAuthenticationValid records whether credentials are currently accepted
func (em *ExporterMetrics) SetAuthenticationValid(valid bool) {
	if valid {
		em.AuthenticationValid.Set(1)
	} else {
		em.AuthenticationValid.Set(0)
	}
}

// IncrementAuthenticationErrors increments the authentication error counter
func (em *ExporterMetrics) IncrementAuthenticationErrors() {
	em.AuthenticationErrorsTotal.Inc()
}

// RecordPullSuccess records the timestamp of a successful status pull
func (em *ExporterMetrics) RecordPullSuccess() {
	em.LastPullSuccessUnix.Set(float64(time.Now().Unix()))
}
