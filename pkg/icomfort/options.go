package icomfort

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/thevoltagesource/myicomfort/pkg/logger"
)

// Service selects which vendor cloud endpoint the client talks to. Both
// services speak an identical protocol on different hosts.
type Service string

const (
	ServiceLennox  Service = "lennox"
	ServiceAirEase Service = "airease"
)

// serviceBaseURLs maps each service to its cloud endpoint.
var serviceBaseURLs = map[Service]string{
	ServiceLennox:  "https://services.myicomfort.com/DBAcessService.svc/",
	ServiceAirEase: "https://services.mycomfortsync.com/DBAcessService.svc/",
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig) error

// clientConfig holds the configuration for a Client.
type clientConfig struct {
	system     int
	zone       int
	service    Service
	units      TemperatureUnits
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        *logger.Logger
}

// defaultConfig returns the default client configuration.
func defaultConfig() *clientConfig {
	return &clientConfig{
		system:  0,
		zone:    0,
		service: ServiceLennox,
		units:   UseDeviceSetting,
		timeout: 10 * time.Second,
	}
}

// WithSystem selects which system on the account to operate on.
// Default is the first system (index 0).
func WithSystem(index int) ClientOption {
	return func(c *clientConfig) error {
		if index < 0 {
			return errors.New("system index must be non-negative")
		}
		c.system = index
		return nil
	}
}

// WithZone selects which zone within the system to operate on.
// Default is the first zone (index 0).
func WithZone(index int) ClientOption {
	return func(c *clientConfig) error {
		if index < 0 {
			return errors.New("zone index must be non-negative")
		}
		c.zone = index
		return nil
	}
}

// WithService selects the vendor cloud endpoint.
// Default is ServiceLennox.
func WithService(service Service) ClientOption {
	return func(c *clientConfig) error {
		s := Service(strings.ToLower(string(service)))
		if _, ok := serviceBaseURLs[s]; !ok {
			return fmt.Errorf("unknown service %q (must be %q or %q)", service, ServiceLennox, ServiceAirEase)
		}
		c.service = s
		return nil
	}
}

// WithUnits sets the temperature scale for reported and submitted values.
// Default is UseDeviceSetting, which adopts the thermostat's own
// preference after the first status pull.
func WithUnits(units TemperatureUnits) ClientOption {
	return func(c *clientConfig) error {
		switch units {
		case Fahrenheit, Celsius, UseDeviceSetting:
			c.units = units
			return nil
		default:
			return fmt.Errorf("invalid units %d (must be Fahrenheit, Celsius or UseDeviceSetting)", units)
		}
	}
}

// WithTimeout sets the HTTP request timeout.
// Default is 10 seconds. Ignored when WithHTTPClient is also given.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		c.timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) error {
		if hc == nil {
			return errors.New("http client must not be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithBaseURL overrides the service endpoint URL. Intended for tests
// against a local double; overrides WithService routing.
func WithBaseURL(url string) ClientOption {
	return func(c *clientConfig) error {
		if url == "" {
			return errors.New("base URL must not be empty")
		}
		if !strings.HasSuffix(url, "/") {
			url += "/"
		}
		c.baseURL = url
		return nil
	}
}

// WithLogger sets a structured logger for debug and error logging.
// By default, no logging is performed.
func WithLogger(log *logger.Logger) ClientOption {
	return func(c *clientConfig) error {
		c.log = log
		return nil
	}
}
