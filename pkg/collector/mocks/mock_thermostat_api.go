// Package mocks provides test doubles for collector package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thevoltagesource/myicomfort/pkg/icomfort"
)

// MockThermostatAPI is a mock implementation of the ThermostatAPI interface
type MockThermostatAPI struct {
	mock.Mock
}

// PullStatus implements ThermostatAPI.PullStatus
func (m *MockThermostatAPI) PullStatus(ctx context.Context) (*icomfort.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*icomfort.Snapshot), args.Error(1)
}

// ExpectPullStatusReturns sets up expectation for PullStatus to return a snapshot
func (m *MockThermostatAPI) ExpectPullStatusReturns(snapshot *icomfort.Snapshot) *MockThermostatAPI {
	m.On("PullStatus", mock.Anything).Return(snapshot, nil)
	return m
}

// ExpectPullStatusReturnsError sets up expectation for PullStatus to return an error
func (m *MockThermostatAPI) ExpectPullStatusReturnsError(err error) *MockThermostatAPI {
	m.On("PullStatus", mock.Anything).Return(nil, err)
	return m
}

// NewSnapshot builds a fully populated snapshot for tests
func NewSnapshot(temp, humidity, heat, cool float64, mode icomfort.OperationMode, fan icomfort.FanMode, status icomfort.SystemStatus, away bool, units icomfort.TemperatureUnits) *icomfort.Snapshot {
	return &icomfort.Snapshot{
		CurrentTemperature: &temp,
		CurrentHumidity:    &humidity,
		HeatSetpoint:       &heat,
		CoolSetpoint:       &cool,
		OperationMode:      &mode,
		FanMode:            &fan,
		SystemStatus:       &status,
		AwayMode:           &away,
		PreferredUnits:     &units,
	}
}
