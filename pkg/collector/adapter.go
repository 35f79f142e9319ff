// Package collector provides an adapter for the icomfort client.
package collector

import (
	"context"
	"fmt"

	"github.com/thevoltagesource/myicomfort/pkg/icomfort"
)

// ClientAdapter adapts *icomfort.Client to the ThermostatAPI interface,
// logging in lazily on the first pull (and again if the session is ever
// lost, since the client tracks that itself).
type ClientAdapter struct {
	client *icomfort.Client
}

// NewClientAdapter creates a new adapter for the icomfort client
func NewClientAdapter(client *icomfort.Client) ThermostatAPI {
	return &ClientAdapter{client: client}
}

// PullStatus implements ThermostatAPI.PullStatus
func (a *ClientAdapter) PullStatus(ctx context.Context) (*icomfort.Snapshot, error) {
	if !a.client.LoggedIn() {
		if err := a.client.Login(ctx); err != nil {
			return nil, fmt.Errorf("failed to log in: %w", err)
		}
	}

	if err := a.client.PullStatus(ctx); err != nil {
		return nil, fmt.Errorf("failed to pull status: %w", err)
	}

	return a.client.Snapshot(), nil
}
