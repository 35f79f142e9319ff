// icomfortctl is a command-line tool for reading and adjusting Lennox
// iComfort and AirEase Comfort Sync WiFi thermostats through the vendor
// cloud service.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
