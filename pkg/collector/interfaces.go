// Package collector provides interfaces for thermostat interactions.
package collector

import (
	"context"

	"github.com/thevoltagesource/myicomfort/pkg/icomfort"
)

// ThermostatAPI defines the interface for fetching thermostat state.
// This interface allows for dependency injection and testing with mocks.
type ThermostatAPI interface {
	// PullStatus fetches the current state of the configured zone,
	// authenticating first if needed, and returns the resulting snapshot.
	PullStatus(ctx context.Context) (*icomfort.Snapshot, error)
}
