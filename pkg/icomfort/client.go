package icomfort

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/thevoltagesource/myicomfort/pkg/logger"
)

// Setpoint limits supported by the thermostat, per unit scale.
const (
	MinSetpointFahrenheit float64 = 40
	MaxSetpointFahrenheit float64 = 99
	MinSetpointCelsius    float64 = 4.5
	MaxSetpointCelsius    float64 = 37.5
)

// Client talks to the iComfort (or Comfort Sync) cloud service for one
// thermostat zone. Construct it with NewClient; no network I/O happens
// until Login.
type Client struct {
	username string
	password string
	system   int
	zone     int
	service  Service
	baseURL  string

	units          TemperatureUnits
	useDeviceUnits bool

	httpClient *http.Client
	log        *logger.Logger

	// serial is the gateway serial number resolved by Login; empty means
	// unauthenticated.
	serial   string
	snapshot *Snapshot
}

// NewClient creates a client for the given account credentials.
func NewClient(username, password string, opts ...ClientOption) (*Client, error) {
	if username == "" {
		return nil, errors.New("username must not be empty")
	}
	if password == "" {
		return nil, errors.New("password must not be empty")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	baseURL := cfg.baseURL
	if baseURL == "" {
		baseURL = serviceBaseURLs[cfg.service]
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}

	log := cfg.log
	if log == nil {
		log, _ = logger.NewWithWriter("error", "text", io.Discard)
	}

	return &Client{
		username:       username,
		password:       password,
		system:         cfg.system,
		zone:           cfg.zone,
		service:        cfg.service,
		baseURL:        baseURL,
		units:          cfg.units,
		useDeviceUnits: cfg.units == UseDeviceSetting,
		httpClient:     httpClient,
		log:            log,
	}, nil
}

// Service returns the configured vendor service.
func (c *Client) Service() Service { return c.service }

// System returns the configured system index.
func (c *Client) System() int { return c.system }

// Zone returns the configured zone index.
func (c *Client) Zone() int { return c.zone }

// LoggedIn reports whether Login has succeeded.
func (c *Client) LoggedIn() bool { return c.serial != "" }

// Login resolves the gateway serial number for the configured system.
// The service has no session concept; credentials are sent with every
// request, so a 401 here is the earliest point bad credentials surface.
func (c *Client) Login(ctx context.Context) error {
	endpoint := c.baseURL + "GetSystemsInfo?UserId=" + url.QueryEscape(c.username)

	body, err := c.do(ctx, "login", http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	var info systemsInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return &ParseError{Op: "login", Reason: err.Error()}
	}
	if len(info.Systems) == 0 {
		return &ParseError{Op: "login", Field: "Systems", Reason: "no systems found for account"}
	}

	system := c.system
	if system >= len(info.Systems) {
		c.log.Warn("Configured system not found, switching to first system",
			"system", system, "available", len(info.Systems))
		system = 0
		c.system = 0
	}

	serial := info.Systems[system].GatewaySN
	if serial == "" {
		return &ParseError{Op: "login", Field: "Gateway_SN", Reason: "missing gateway serial number"}
	}

	c.serial = serial
	c.log.Debug("Resolved gateway serial number", "system", system)
	return nil
}

// PullStatus fetches the current state of the configured zone and
// replaces the cached snapshot. A failed pull leaves the previous
// snapshot untouched.
func (c *Client) PullStatus(ctx context.Context) error {
	if c.serial == "" {
		return ErrNotAuthenticated
	}

	units := c.requestUnits()
	info, err := c.fetchStatus(ctx, units)
	if err != nil {
		return err
	}

	// When deferring to the device's preference, the first fetch does not
	// yet know the device scale; re-request so readings arrive in it.
	if c.useDeviceUnits && info.PrefTempUnits != nil {
		deviceUnits := TemperatureUnits(int(*info.PrefTempUnits))
		if deviceUnits != units && (deviceUnits == Fahrenheit || deviceUnits == Celsius) {
			info, err = c.fetchStatus(ctx, deviceUnits)
			if err != nil {
				return err
			}
		}
	}

	snapshot, err := snapshotFromWire(info)
	if err != nil {
		return err
	}
	c.snapshot = snapshot
	return nil
}

// fetchStatus performs one GetTStatInfoList round trip and returns the
// configured zone's record, falling back to zone 0 when the configured
// zone does not exist.
func (c *Client) fetchStatus(ctx context.Context, units TemperatureUnits) (*tstatInfo, error) {
	endpoint := fmt.Sprintf("%sGetTStatInfoList?gatewaysn=%s&TempUnit=%d",
		c.baseURL, url.QueryEscape(c.serial), int(units))

	body, err := c.do(ctx, "pull status", http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp tstatInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Op: "pull status", Reason: err.Error()}
	}
	if len(resp.TStatInfo) == 0 {
		return nil, &ParseError{Op: "pull status", Field: "tStatInfo", Reason: "no zones found"}
	}

	if c.zone >= len(resp.TStatInfo) {
		c.log.Warn("Configured zone not found, switching to first zone",
			"zone", c.zone, "available", len(resp.TStatInfo))
		c.zone = 0
	}

	return &resp.TStatInfo[c.zone], nil
}

// snapshotFromWire converts a wire record into a Snapshot, requiring the
// fields the client depends on to be present.
func snapshotFromWire(info *tstatInfo) (*Snapshot, error) {
	required := []struct {
		name  string
		value *flexNumber
	}{
		{"Indoor_Temp", info.IndoorTemp},
		{"Heat_Set_Point", info.HeatSetPoint},
		{"Cool_Set_Point", info.CoolSetPoint},
		{"Operation_Mode", info.OperationMode},
		{"Fan_Mode", info.FanMode},
		{"System_Status", info.SystemStatus},
		{"Pref_Temp_Units", info.PrefTempUnits},
	}
	for _, field := range required {
		if field.value == nil {
			return nil, &ParseError{Op: "pull status", Field: field.name, Reason: "missing"}
		}
	}

	snapshot := &Snapshot{}

	temp := float64(*info.IndoorTemp)
	snapshot.CurrentTemperature = &temp

	heat := float64(*info.HeatSetPoint)
	snapshot.HeatSetpoint = &heat

	cool := float64(*info.CoolSetPoint)
	snapshot.CoolSetpoint = &cool

	mode := OperationMode(int(*info.OperationMode))
	snapshot.OperationMode = &mode

	fan := FanMode(int(*info.FanMode))
	snapshot.FanMode = &fan

	status := SystemStatus(int(*info.SystemStatus))
	snapshot.SystemStatus = &status

	units := TemperatureUnits(int(*info.PrefTempUnits))
	snapshot.PreferredUnits = &units

	// Humidity and away mode are absent on some firmware; tolerate that.
	if info.IndoorHumidity != nil {
		humidity := float64(*info.IndoorHumidity)
		snapshot.CurrentHumidity = &humidity
	}
	if info.AwayMode != nil {
		away := int(*info.AwayMode) != 0
		snapshot.AwayMode = &away
	}

	return snapshot, nil
}

// SetPoints submits new heat and cool setpoints for the configured zone,
// in the client's configured unit scale. The lower value becomes the
// heat setpoint and the higher the cool setpoint. The cached snapshot is
// not updated; call PullStatus to observe the change.
func (c *Client) SetPoints(ctx context.Context, heat, cool float64) error {
	units := c.requestUnits()
	if err := validateSetpoint("heat_setpoint", heat, units); err != nil {
		return err
	}
	if err := validateSetpoint("cool_setpoint", cool, units); err != nil {
		return err
	}
	if heat > cool {
		heat, cool = cool, heat
	}

	return c.pushSettings(ctx, func(req *setTStatInfoRequest) {
		req.HeatSetPoint = heat
		req.CoolSetPoint = cool
	})
}

// SetOperationMode submits a new operating mode for the configured zone.
func (c *Client) SetOperationMode(ctx context.Context, mode OperationMode) error {
	if _, ok := operationModeNames[mode]; !ok {
		return &ValidationError{Field: "operation_mode", Value: int(mode), Reason: "unknown mode"}
	}
	return c.pushSettings(ctx, func(req *setTStatInfoRequest) {
		req.OperationMode = int(mode)
	})
}

// SetFanMode submits a new fan mode for the configured zone.
func (c *Client) SetFanMode(ctx context.Context, mode FanMode) error {
	if _, ok := fanModeNames[mode]; !ok {
		return &ValidationError{Field: "fan_mode", Value: int(mode), Reason: "unknown mode"}
	}
	return c.pushSettings(ctx, func(req *setTStatInfoRequest) {
		req.FanMode = int(mode)
	})
}

// SetAwayMode turns away mode on or off for the whole system.
func (c *Client) SetAwayMode(ctx context.Context, on bool) error {
	if c.serial == "" {
		return ErrNotAuthenticated
	}

	away := 0
	if on {
		away = 1
	}
	endpoint := fmt.Sprintf("%sSetAwayModeNew?gatewaysn=%s&awaymode=%d",
		c.baseURL, url.QueryEscape(c.serial), away)

	_, err := c.do(ctx, "set away mode", http.MethodPut, endpoint, nil)
	return err
}

// pushSettings sends the full settings record for the zone, seeded from
// the cached snapshot with the caller's change applied on top. The
// service only accepts complete records, which is why a prior PullStatus
// is required.
func (c *Client) pushSettings(ctx context.Context, apply func(*setTStatInfoRequest)) error {
	if c.serial == "" {
		return ErrNotAuthenticated
	}
	if c.snapshot == nil {
		return ErrNoStatus
	}

	req := &setTStatInfoRequest{
		HeatSetPoint:  *c.snapshot.HeatSetpoint,
		CoolSetPoint:  *c.snapshot.CoolSetpoint,
		FanMode:       int(*c.snapshot.FanMode),
		OperationMode: int(*c.snapshot.OperationMode),
		PrefTempUnits: int(c.requestUnits()),
		ZoneNumber:    c.zone,
		GatewaySN:     c.serial,
	}
	apply(req)

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	endpoint := c.baseURL + "SetTStatInfo"
	_, err = c.do(ctx, "push settings", http.MethodPut, endpoint, bytes.NewReader(payload))
	return err
}

// do performs one authenticated round trip and returns the response body.
func (c *Client) do(ctx context.Context, op, method, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{StatusCode: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	return data, nil
}

// requestUnits resolves the unit scale to send with requests: the
// configured preference, or the device's own once known, or Fahrenheit
// until the first pull reveals it.
func (c *Client) requestUnits() TemperatureUnits {
	if !c.useDeviceUnits {
		return c.units
	}
	if c.snapshot != nil && c.snapshot.PreferredUnits != nil {
		return *c.snapshot.PreferredUnits
	}
	return Fahrenheit
}

// validateSetpoint checks a setpoint against the device's supported
// range for the given unit scale.
func validateSetpoint(field string, value float64, units TemperatureUnits) error {
	min, max := MinSetpointFahrenheit, MaxSetpointFahrenheit
	if units == Celsius {
		min, max = MinSetpointCelsius, MaxSetpointCelsius
	}
	if value < min || value > max {
		return &ValidationError{
			Field:  field,
			Value:  value,
			Reason: fmt.Sprintf("outside supported range [%g, %g]°%s", min, max, units),
		}
	}
	return nil
}

// Accessors read the cached snapshot and return nil until the first
// successful PullStatus.

// CurrentTemperature returns the last-fetched indoor temperature.
func (c *Client) CurrentTemperature() *float64 {
	if c.snapshot == nil {
		return nil
	}
	return copyFloat(c.snapshot.CurrentTemperature)
}

// CurrentHumidity returns the last-fetched indoor relative humidity.
func (c *Client) CurrentHumidity() *float64 {
	if c.snapshot == nil {
		return nil
	}
	return copyFloat(c.snapshot.CurrentHumidity)
}

// HeatSetpoint returns the last-fetched heat setpoint.
func (c *Client) HeatSetpoint() *float64 {
	if c.snapshot == nil {
		return nil
	}
	return copyFloat(c.snapshot.HeatSetpoint)
}

// CoolSetpoint returns the last-fetched cool setpoint.
func (c *Client) CoolSetpoint() *float64 {
	if c.snapshot == nil {
		return nil
	}
	return copyFloat(c.snapshot.CoolSetpoint)
}

// OperationMode returns the last-fetched operating mode.
func (c *Client) OperationMode() *OperationMode {
	if c.snapshot == nil || c.snapshot.OperationMode == nil {
		return nil
	}
	v := *c.snapshot.OperationMode
	return &v
}

// FanMode returns the last-fetched fan mode.
func (c *Client) FanMode() *FanMode {
	if c.snapshot == nil || c.snapshot.FanMode == nil {
		return nil
	}
	v := *c.snapshot.FanMode
	return &v
}

// SystemStatus returns the last-fetched system activity.
func (c *Client) SystemStatus() *SystemStatus {
	if c.snapshot == nil || c.snapshot.SystemStatus == nil {
		return nil
	}
	v := *c.snapshot.SystemStatus
	return &v
}

// AwayMode returns the last-fetched away mode state.
func (c *Client) AwayMode() *bool {
	if c.snapshot == nil || c.snapshot.AwayMode == nil {
		return nil
	}
	v := *c.snapshot.AwayMode
	return &v
}

// PreferredUnits returns the unit scale of the last-fetched snapshot.
func (c *Client) PreferredUnits() *TemperatureUnits {
	if c.snapshot == nil || c.snapshot.PreferredUnits == nil {
		return nil
	}
	v := *c.snapshot.PreferredUnits
	return &v
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Snapshot returns a copy of the cached snapshot, or nil before the
// first successful PullStatus.
func (c *Client) Snapshot() *Snapshot {
	return c.snapshot.clone()
}

// GetJSON serializes the cached snapshot as a flat JSON object with
// semantic field names and mode values rendered as names. Returns "{}"
// before the first successful PullStatus.
func (c *Client) GetJSON() (string, error) {
	if c.snapshot == nil {
		return "{}", nil
	}
	data, err := json.Marshal(c.snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return string(data), nil
}
