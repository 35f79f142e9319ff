// Package icomfort provides a client for the Lennox iComfort WiFi cloud
// service, which exposes read and control access to WiFi-connected
// thermostats. The same protocol is served for AirEase Comfort Sync
// thermostats under a different host, selectable with WithService.
//
// # Basic Usage
//
//	client, err := icomfort.NewClient("user@example.com", "secret")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := client.Login(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := client.PullStatus(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	if temp := client.CurrentTemperature(); temp != nil {
//	    fmt.Printf("current temperature: %.1f\n", *temp)
//	}
//
// # Configuration
//
// The client is configured with functional options:
//
//	client, err := icomfort.NewClient("user@example.com", "secret",
//	    icomfort.WithService(icomfort.ServiceAirEase),
//	    icomfort.WithZone(1),
//	    icomfort.WithUnits(icomfort.Celsius),
//	)
//
// # State Model
//
// The client keeps a single in-memory snapshot of the last status fetched
// by PullStatus. Accessors read that snapshot and return nil until the
// first successful pull; there is no background refresh, and setpoint or
// mode changes are not reflected locally until the next explicit
// PullStatus. Each operation maps to one HTTP round trip with no retries;
// errors surface to the caller as *AuthError, *NetworkError, *ParseError
// or *ValidationError.
//
// A Client is not safe for concurrent use from multiple goroutines;
// callers that share one must synchronize externally.
package icomfort
