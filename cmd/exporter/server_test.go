package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thevoltagesource/myicomfort/pkg/collector"
	"github.com/thevoltagesource/myicomfort/pkg/config"
	"github.com/thevoltagesource/myicomfort/pkg/icomfort"
	"github.com/thevoltagesource/myicomfort/pkg/logger"
	"github.com/thevoltagesource/myicomfort/pkg/metrics"
)

// findFreePort asks the kernel for an available TCP port
func findFreePort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())
	return port
}

// newStubVendorService serves a fixed single-zone thermostat
func newStubVendorService(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/GetSystemsInfo":
			fmt.Fprint(w, `{"Systems":[{"Gateway_SN":"GW1"}]}`)
		case "/GetTStatInfoList":
			fmt.Fprint(w, `{"tStatInfo":[{
				"Pref_Temp_Units":0,"System_Status":1,"Operation_Mode":3,"Fan_Mode":0,
				"Away_Mode":0,"Indoor_Temp":72,"Indoor_Humidity":45,
				"Heat_Set_Point":65,"Cool_Set_Point":78}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestServerSetup(t *testing.T) (*config.Config, *collector.ThermostatCollector, *logger.Logger) {
	t.Helper()

	vendor := newStubVendorService(t)

	client, err := icomfort.NewClient("user", "pass",
		icomfort.WithBaseURL(vendor.URL+"/"),
		icomfort.WithUnits(icomfort.Fahrenheit),
	)
	require.NoError(t, err)

	log, err := logger.NewWithWriter("error", "text", io.Discard)
	require.NoError(t, err)

	exporterMetrics := metrics.NewExporterMetrics()
	exporterMetrics.SetBuildInfo()

	thermostatCollector := collector.NewThermostatCollector(
		collector.NewClientAdapter(client),
		metrics.NewMetricDescriptors(),
		5*time.Second,
		"lennox", 0, 0,
		log,
	).WithExporterMetrics(exporterMetrics)

	cfg := &config.Config{
		Username:      "user",
		Password:      "pass",
		Service:       "lennox",
		Units:         "F",
		Port:          findFreePort(t),
		ScrapeTimeout: 5,
		LogLevel:      "error",
		LogFormat:     "text",
	}

	return cfg, thermostatCollector, log
}

// waitForServer polls the health endpoint until the server responds
func waitForServer(t *testing.T, port int) {
	t.Helper()

	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("server on port %d did not become ready", port)
}

func TestStartServer_ServesHealthAndMetrics(t *testing.T) {
	cfg, thermostatCollector, log := newTestServerSetup(t)

	ctx, cancel := context.WithCancel(context.Background())
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- StartServer(ctx, cfg, thermostatCollector, log)
	}()
	waitForServer(t, cfg.Port)

	// Health endpoint
	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Port))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	// Metrics endpoint triggers a pull against the stub vendor service
	resp, err = http.Get(fmt.Sprintf("http://127.0.0.1:%d/metrics", cfg.Port))
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	output := string(body)
	assert.Contains(t, output, "icomfort_temperature_current")
	assert.Contains(t, output, `service="lennox"`)
	assert.Contains(t, output, "icomfort_exporter_build_info")

	// Graceful shutdown
	cancel()
	select {
	case err := <-serverDone:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestUnitsFromConfig(t *testing.T) {
	t.Parallel()

	assert.Equal(t, icomfort.Fahrenheit, unitsFromConfig("F"))
	assert.Equal(t, icomfort.Fahrenheit, unitsFromConfig("f"))
	assert.Equal(t, icomfort.Celsius, unitsFromConfig("C"))
	assert.Equal(t, icomfort.UseDeviceSetting, unitsFromConfig("device"))
	assert.Equal(t, icomfort.UseDeviceSetting, unitsFromConfig(""))
}
