package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricDescriptors holds all Prometheus metric descriptors for the
// thermostat state exposed by the exporter. Zone metrics carry service,
// system and zone labels so multiple exporters can share a Prometheus.
type MetricDescriptors struct {
	TemperatureCurrent prometheus.GaugeVec
	HumidityCurrent    prometheus.GaugeVec
	HeatSetpoint       prometheus.GaugeVec
	CoolSetpoint       prometheus.GaugeVec
	OperationMode      prometheus.GaugeVec
	FanMode            prometheus.GaugeVec
	SystemStatus       prometheus.GaugeVec
	AwayMode           prometheus.GaugeVec
}

var zoneLabels = []string{"service", "system", "zone"}

// NewMetricDescriptors creates all thermostat metrics. The descriptors
// are not registered; the collector forwards their Describe and Collect
// calls to whichever registry it is registered with.
func NewMetricDescriptors() *MetricDescriptors {
	return &MetricDescriptors{
		TemperatureCurrent: *prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icomfort_temperature_current",
				Help: "Current indoor temperature in the configured unit scale",
			},
			zoneLabels,
		),

		HumidityCurrent: *prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icomfort_humidity_current_percentage",
				Help: "Current indoor relative humidity as a percentage (0-100%)",
			},
			zoneLabels,
		),

		HeatSetpoint: *prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icomfort_heat_setpoint",
				Help: "Target heating temperature in the configured unit scale",
			},
			zoneLabels,
		),

		CoolSetpoint: *prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icomfort_cool_setpoint",
				Help: "Target cooling temperature in the configured unit scale",
			},
			zoneLabels,
		),

		OperationMode: *prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icomfort_operation_mode",
				Help: "Operating mode (0 = off, 1 = heat only, 2 = cool only, 3 = heat & cool, 4 = emergency heat)",
			},
			zoneLabels,
		),

		FanMode: *prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icomfort_fan_mode",
				Help: "Fan mode (0 = auto, 1 = on, 2 = circulate)",
			},
			zoneLabels,
		),

		SystemStatus: *prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icomfort_system_status",
				Help: "System activity (0 = idle, 1 = heating, 2 = cooling, 3 = waiting)",
			},
			zoneLabels,
		),

		AwayMode: *prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icomfort_away_mode",
				Help: "Whether away mode is active (1 = away, 0 = home)",
			},
			zoneLabels,
		),
	}
}

// Describe sends all metric descriptors to the channel.
func (md *MetricDescriptors) Describe(ch chan<- *prometheus.Desc) {
	md.TemperatureCurrent.Describe(ch)
	md.HumidityCurrent.Describe(ch)
	md.HeatSetpoint.Describe(ch)
	md.CoolSetpoint.Describe(ch)
	md.OperationMode.Describe(ch)
	md.FanMode.Describe(ch)
	md.SystemStatus.Describe(ch)
	md.AwayMode.Describe(ch)
}

// Collect sends all current metric values to the channel.
func (md *MetricDescriptors) Collect(ch chan<- prometheus.Metric) {
	md.TemperatureCurrent.Collect(ch)
	md.HumidityCurrent.Collect(ch)
	md.HeatSetpoint.Collect(ch)
	md.CoolSetpoint.Collect(ch)
	md.OperationMode.Collect(ch)
	md.FanMode.Collect(ch)
	md.SystemStatus.Collect(ch)
	md.AwayMode.Collect(ch)
}

// Reset clears all metric values (useful for testing)
func (md *MetricDescriptors) Reset() {
	md.TemperatureCurrent.Reset()
	md.HumidityCurrent.Reset()
	md.HeatSetpoint.Reset()
	md.CoolSetpoint.Reset()
	md.OperationMode.Reset()
	md.FanMode.Reset()
	md.SystemStatus.Reset()
	md.AwayMode.Reset()
}

// CelsiusToFahrenheit converts Celsius to Fahrenheit
func CelsiusToFahrenheit(celsius float64) float64 {
	return celsius*9/5 + 32
}

// FahrenheitToCelsius converts Fahrenheit to Celsius
func FahrenheitToCelsius(fahrenheit float64) float64 {
	return (fahrenheit - 32) * 5 / 9
}
