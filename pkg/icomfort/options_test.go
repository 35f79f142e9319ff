package icomfort

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := NewClient("", "pass")
	assert.Error(t, err)

	_, err = NewClient("user", "")
	assert.Error(t, err)
}

func TestWithSystem_Valid(t *testing.T) {
	t.Parallel()

	client, err := NewClient("user", "pass", WithSystem(2))
	require.NoError(t, err)
	assert.Equal(t, 2, client.System())
}

func TestWithSystem_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewClient("user", "pass", WithSystem(-1))
	assert.Error(t, err)
}

func TestWithZone_Valid(t *testing.T) {
	t.Parallel()

	client, err := NewClient("user", "pass", WithZone(1))
	require.NoError(t, err)
	assert.Equal(t, 1, client.Zone())
}

func TestWithZone_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewClient("user", "pass", WithZone(-3))
	assert.Error(t, err)
}

func TestWithService_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewClient("user", "pass", WithService("honeywell"))
	assert.Error(t, err)
}

func TestWithUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		units   TemperatureUnits
		wantErr bool
	}{
		{name: "fahrenheit", units: Fahrenheit},
		{name: "celsius", units: Celsius},
		{name: "device", units: UseDeviceSetting},
		{name: "invalid", units: TemperatureUnits(4), wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewClient("user", "pass", WithUnits(tt.units))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithTimeout_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewClient("user", "pass", WithTimeout(0))
	assert.Error(t, err)

	_, err = NewClient("user", "pass", WithTimeout(-time.Second))
	assert.Error(t, err)
}

func TestWithHTTPClient_Nil(t *testing.T) {
	t.Parallel()

	_, err := NewClient("user", "pass", WithHTTPClient(nil))
	assert.Error(t, err)
}

func TestWithHTTPClient_Custom(t *testing.T) {
	t.Parallel()

	hc := &http.Client{Timeout: time.Second}
	client, err := NewClient("user", "pass", WithHTTPClient(hc))
	require.NoError(t, err)
	assert.Same(t, hc, client.httpClient)
}

func TestWithBaseURL_AppendsSlash(t *testing.T) {
	t.Parallel()

	client, err := NewClient("user", "pass", WithBaseURL("http://localhost:8080"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/", client.baseURL)
}

func TestWithBaseURL_Empty(t *testing.T) {
	t.Parallel()

	_, err := NewClient("user", "pass", WithBaseURL(""))
	assert.Error(t, err)
}
