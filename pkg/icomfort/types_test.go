package icomfort

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "F", Fahrenheit.String())
	assert.Equal(t, "C", Celsius.String())
	assert.Equal(t, "Device", UseDeviceSetting.String())

	assert.Equal(t, "Off", ModeOff.String())
	assert.Equal(t, "Heat only", ModeHeatOnly.String())
	assert.Equal(t, "Cool only", ModeCoolOnly.String())
	assert.Equal(t, "Heat & Cool", ModeHeatCool.String())
	assert.Equal(t, "Emergency Heat", ModeEmergencyHeat.String())

	assert.Equal(t, "Auto", FanAuto.String())
	assert.Equal(t, "On", FanOn.String())
	assert.Equal(t, "Circulate", FanCirculate.String())

	assert.Equal(t, "Idle", StatusIdle.String())
	assert.Equal(t, "Heating", StatusHeating.String())
	assert.Equal(t, "Cooling", StatusCooling.String())
	assert.Equal(t, "System Waiting", StatusWaiting.String())
}

func TestEnumUnknownValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "OperationMode(9)", OperationMode(9).String())
	assert.Equal(t, "FanMode(7)", FanMode(7).String())
	assert.Equal(t, "SystemStatus(8)", SystemStatus(8).String())
}

func TestEnumsMarshalAsNames(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(ModeHeatOnly)
	require.NoError(t, err)
	assert.Equal(t, `"Heat only"`, string(data))

	data, err = json.Marshal(FanCirculate)
	require.NoError(t, err)
	assert.Equal(t, `"Circulate"`, string(data))

	data, err = json.Marshal(StatusWaiting)
	require.NoError(t, err)
	assert.Equal(t, `"System Waiting"`, string(data))
}

func TestParseOperationMode(t *testing.T) {
	t.Parallel()

	mode, err := ParseOperationMode("heat only")
	require.NoError(t, err)
	assert.Equal(t, ModeHeatOnly, mode)

	mode, err = ParseOperationMode("OFF")
	require.NoError(t, err)
	assert.Equal(t, ModeOff, mode)

	_, err = ParseOperationMode("defrost")
	assert.Error(t, err)
}

func TestParseFanMode(t *testing.T) {
	t.Parallel()

	mode, err := ParseFanMode("Circulate")
	require.NoError(t, err)
	assert.Equal(t, FanCirculate, mode)

	_, err = ParseFanMode("turbo")
	assert.Error(t, err)
}

func TestFlexNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected float64
		wantErr  bool
	}{
		{name: "plain number", input: `72.5`, expected: 72.5},
		{name: "quoted number", input: `"72.5"`, expected: 72.5},
		{name: "quoted integer", input: `"1"`, expected: 1},
		{name: "not a number", input: `"warm"`, wantErr: true},
		{name: "empty string", input: `""`, wantErr: true},
		{name: "null", input: `null`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var f flexNumber
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, float64(f))
			}
		})
	}
}

func TestSnapshotClone(t *testing.T) {
	t.Parallel()

	var nilSnapshot *Snapshot
	assert.Nil(t, nilSnapshot.clone())

	temp := 72.0
	mode := ModeHeatCool
	original := &Snapshot{
		CurrentTemperature: &temp,
		OperationMode:      &mode,
	}

	copied := original.clone()
	require.NotNil(t, copied.CurrentTemperature)
	assert.Equal(t, 72.0, *copied.CurrentTemperature)
	assert.Nil(t, copied.CurrentHumidity)

	// Mutating the copy must not touch the original.
	*copied.CurrentTemperature = 99
	assert.Equal(t, 72.0, *original.CurrentTemperature)
}
