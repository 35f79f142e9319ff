package icomfort

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TemperatureUnits selects the temperature scale for reported and
// submitted values. The cloud service converts server-side based on the
// TempUnit request parameter, so the client never rescales readings
// itself.
type TemperatureUnits int

const (
	Fahrenheit TemperatureUnits = 0
	Celsius    TemperatureUnits = 1

	// UseDeviceSetting defers to the thermostat's own preferred units,
	// adopted from the first status pull. The raw value matches what the
	// original service treats as "no preference".
	UseDeviceSetting TemperatureUnits = 9
)

var unitsNames = map[TemperatureUnits]string{
	Fahrenheit:       "F",
	Celsius:          "C",
	UseDeviceSetting: "Device",
}

func (u TemperatureUnits) String() string {
	if name, ok := unitsNames[u]; ok {
		return name
	}
	return fmt.Sprintf("TemperatureUnits(%d)", int(u))
}

// MarshalJSON renders the unit name rather than the wire code.
func (u TemperatureUnits) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// OperationMode is the thermostat's configured operating mode.
type OperationMode int

const (
	ModeOff OperationMode = iota
	ModeHeatOnly
	ModeCoolOnly
	ModeHeatCool
	ModeEmergencyHeat
)

var operationModeNames = map[OperationMode]string{
	ModeOff:           "Off",
	ModeHeatOnly:      "Heat only",
	ModeCoolOnly:      "Cool only",
	ModeHeatCool:      "Heat & Cool",
	ModeEmergencyHeat: "Emergency Heat",
}

func (m OperationMode) String() string {
	if name, ok := operationModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("OperationMode(%d)", int(m))
}

func (m OperationMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// FanMode is the thermostat's fan behavior.
type FanMode int

const (
	FanAuto FanMode = iota
	FanOn
	FanCirculate
)

var fanModeNames = map[FanMode]string{
	FanAuto:      "Auto",
	FanOn:        "On",
	FanCirculate: "Circulate",
}

func (m FanMode) String() string {
	if name, ok := fanModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("FanMode(%d)", int(m))
}

func (m FanMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// SystemStatus is the thermostat's current activity.
type SystemStatus int

const (
	StatusIdle SystemStatus = iota
	StatusHeating
	StatusCooling
	StatusWaiting
)

var systemStatusNames = map[SystemStatus]string{
	StatusIdle:    "Idle",
	StatusHeating: "Heating",
	StatusCooling: "Cooling",
	StatusWaiting: "System Waiting",
}

func (s SystemStatus) String() string {
	if name, ok := systemStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SystemStatus(%d)", int(s))
}

func (s SystemStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ParseOperationMode resolves a mode name (case-insensitive) to its value.
func ParseOperationMode(name string) (OperationMode, error) {
	for mode, n := range operationModeNames {
		if strings.EqualFold(n, name) {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown operation mode: %q", name)
}

// ParseFanMode resolves a fan mode name (case-insensitive) to its value.
func ParseFanMode(name string) (FanMode, error) {
	for mode, n := range fanModeNames {
		if strings.EqualFold(n, name) {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown fan mode: %q", name)
}

// Snapshot is the last-fetched state of one thermostat zone. Every field
// is a pointer defaulting to nil so an accessor can never report a value
// that was not actually received; a new snapshot wholly replaces the
// previous one on each successful pull.
type Snapshot struct {
	CurrentTemperature *float64          `json:"current_temperature,omitempty"`
	CurrentHumidity    *float64          `json:"current_humidity,omitempty"`
	HeatSetpoint       *float64          `json:"heat_setpoint,omitempty"`
	CoolSetpoint       *float64          `json:"cool_setpoint,omitempty"`
	OperationMode      *OperationMode    `json:"operation_mode,omitempty"`
	FanMode            *FanMode          `json:"fan_mode,omitempty"`
	SystemStatus       *SystemStatus     `json:"system_status,omitempty"`
	AwayMode           *bool             `json:"away_mode,omitempty"`
	PreferredUnits     *TemperatureUnits `json:"preferred_units,omitempty"`
}

// clone returns a copy of the snapshot so callers cannot mutate the
// client's cached state through the returned pointer fields.
func (s *Snapshot) clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{}
	if s.CurrentTemperature != nil {
		v := *s.CurrentTemperature
		out.CurrentTemperature = &v
	}
	if s.CurrentHumidity != nil {
		v := *s.CurrentHumidity
		out.CurrentHumidity = &v
	}
	if s.HeatSetpoint != nil {
		v := *s.HeatSetpoint
		out.HeatSetpoint = &v
	}
	if s.CoolSetpoint != nil {
		v := *s.CoolSetpoint
		out.CoolSetpoint = &v
	}
	if s.OperationMode != nil {
		v := *s.OperationMode
		out.OperationMode = &v
	}
	if s.FanMode != nil {
		v := *s.FanMode
		out.FanMode = &v
	}
	if s.SystemStatus != nil {
		v := *s.SystemStatus
		out.SystemStatus = &v
	}
	if s.AwayMode != nil {
		v := *s.AwayMode
		out.AwayMode = &v
	}
	if s.PreferredUnits != nil {
		v := *s.PreferredUnits
		out.PreferredUnits = &v
	}
	return out
}

// flexNumber tolerates the vendor service returning numeric fields either
// as JSON numbers or as quoted strings, which it does inconsistently
// across firmware versions.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return fmt.Errorf("empty numeric value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", data)
	}
	*f = flexNumber(v)
	return nil
}

// systemsInfoResponse is the wire shape of GetSystemsInfo.
type systemsInfoResponse struct {
	Systems []struct {
		GatewaySN string `json:"Gateway_SN"`
	} `json:"Systems"`
}

// tstatInfoResponse is the wire shape of GetTStatInfoList.
type tstatInfoResponse struct {
	TStatInfo []tstatInfo `json:"tStatInfo"`
}

type tstatInfo struct {
	PrefTempUnits  *flexNumber `json:"Pref_Temp_Units"`
	SystemStatus   *flexNumber `json:"System_Status"`
	OperationMode  *flexNumber `json:"Operation_Mode"`
	FanMode        *flexNumber `json:"Fan_Mode"`
	AwayMode       *flexNumber `json:"Away_Mode"`
	IndoorTemp     *flexNumber `json:"Indoor_Temp"`
	IndoorHumidity *flexNumber `json:"Indoor_Humidity"`
	HeatSetPoint   *flexNumber `json:"Heat_Set_Point"`
	CoolSetPoint   *flexNumber `json:"Cool_Set_Point"`
}

// setTStatInfoRequest is the wire shape of the SetTStatInfo push body.
// The service expects raw numeric codes here, not names.
type setTStatInfoRequest struct {
	CoolSetPoint  float64 `json:"Cool_Set_Point"`
	HeatSetPoint  float64 `json:"Heat_Set_Point"`
	FanMode       int     `json:"Fan_Mode"`
	OperationMode int     `json:"Operation_Mode"`
	PrefTempUnits int     `json:"Pref_Temp_Units"`
	ZoneNumber    int     `json:"Zone_Number"`
	GatewaySN     string  `json:"GatewaySN"`
}
