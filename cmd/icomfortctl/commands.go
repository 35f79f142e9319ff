package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thevoltagesource/myicomfort/pkg/icomfort"
)

var (
	username string
	password string
	service  string
	system   int
	zone     int
	units    string
	timeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "icomfortctl",
	Short: "Control Lennox iComfort / AirEase Comfort Sync thermostats",
	Long: "icomfortctl reads and adjusts WiFi thermostats through the vendor\n" +
		"cloud service. Credentials can be given with flags or the\n" +
		"ICOMFORT_USERNAME and ICOMFORT_PASSWORD environment variables.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&username, "username", os.Getenv("ICOMFORT_USERNAME"), "cloud service account username")
	rootCmd.PersistentFlags().StringVar(&password, "password", os.Getenv("ICOMFORT_PASSWORD"), "cloud service account password")
	rootCmd.PersistentFlags().StringVar(&service, "service", "lennox", "vendor service: lennox or airease")
	rootCmd.PersistentFlags().IntVar(&system, "system", 0, "system index on the account")
	rootCmd.PersistentFlags().IntVar(&zone, "zone", 0, "zone index within the system")
	rootCmd.PersistentFlags().StringVar(&units, "units", "device", "temperature units: F, C or device")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(jsonCmd)
	rootCmd.AddCommand(setPointsCmd)
	rootCmd.AddCommand(setModeCmd)
	rootCmd.AddCommand(setFanCmd)
	rootCmd.AddCommand(setAwayCmd)
}

// getClient builds a client from the persistent flags, logs in and pulls
// the initial status.
func getClient(ctx context.Context) (*icomfort.Client, error) {
	var unitsValue icomfort.TemperatureUnits
	switch strings.ToLower(units) {
	case "f":
		unitsValue = icomfort.Fahrenheit
	case "c":
		unitsValue = icomfort.Celsius
	case "device":
		unitsValue = icomfort.UseDeviceSetting
	default:
		return nil, fmt.Errorf("invalid units %q (must be F, C or device)", units)
	}

	client, err := icomfort.NewClient(username, password,
		icomfort.WithService(icomfort.Service(service)),
		icomfort.WithSystem(system),
		icomfort.WithZone(zone),
		icomfort.WithUnits(unitsValue),
		icomfort.WithTimeout(timeout),
	)
	if err != nil {
		return nil, err
	}

	if err := client.Login(ctx); err != nil {
		return nil, err
	}
	if err := client.PullStatus(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current thermostat status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}

		if temp := client.CurrentTemperature(); temp != nil {
			fmt.Printf("Temperature:    %.1f°%s\n", *temp, unitName(client))
		}
		if humidity := client.CurrentHumidity(); humidity != nil {
			fmt.Printf("Humidity:       %.0f%%\n", *humidity)
		}
		if heat := client.HeatSetpoint(); heat != nil {
			fmt.Printf("Heat setpoint:  %.1f°%s\n", *heat, unitName(client))
		}
		if cool := client.CoolSetpoint(); cool != nil {
			fmt.Printf("Cool setpoint:  %.1f°%s\n", *cool, unitName(client))
		}
		if mode := client.OperationMode(); mode != nil {
			fmt.Printf("Mode:           %s\n", mode)
		}
		if fan := client.FanMode(); fan != nil {
			fmt.Printf("Fan:            %s\n", fan)
		}
		if status := client.SystemStatus(); status != nil {
			fmt.Printf("Status:         %s\n", status)
		}
		if away := client.AwayMode(); away != nil {
			state := "off"
			if *away {
				state = "on"
			}
			fmt.Printf("Away mode:      %s\n", state)
		}
		return nil
	},
}

var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Print current thermostat status as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}

		out, err := client.GetJSON()
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var setPointsCmd = &cobra.Command{
	Use:   "set-points <heat> <cool>",
	Short: "Set the heat and cool setpoints",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		heat, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid heat setpoint %q", args[0])
		}
		cool, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid cool setpoint %q", args[1])
		}

		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		if err := client.SetPoints(cmd.Context(), heat, cool); err != nil {
			return err
		}
		fmt.Printf("Setpoints submitted: heat %.1f, cool %.1f\n", heat, cool)
		return nil
	},
}

var setModeCmd = &cobra.Command{
	Use:   "set-mode <mode>",
	Short: "Set the operating mode (off, 'heat only', 'cool only', 'heat & cool', 'emergency heat')",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := icomfort.ParseOperationMode(args[0])
		if err != nil {
			return err
		}

		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		if err := client.SetOperationMode(cmd.Context(), mode); err != nil {
			return err
		}
		fmt.Printf("Operating mode submitted: %s\n", mode)
		return nil
	},
}

var setFanCmd = &cobra.Command{
	Use:   "set-fan <mode>",
	Short: "Set the fan mode (auto, on, circulate)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := icomfort.ParseFanMode(args[0])
		if err != nil {
			return err
		}

		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		if err := client.SetFanMode(cmd.Context(), mode); err != nil {
			return err
		}
		fmt.Printf("Fan mode submitted: %s\n", mode)
		return nil
	},
}

var setAwayCmd = &cobra.Command{
	Use:   "set-away <on|off>",
	Short: "Turn away mode on or off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var on bool
		switch strings.ToLower(args[0]) {
		case "on":
			on = true
		case "off":
			on = false
		default:
			return fmt.Errorf("invalid away mode %q (must be on or off)", args[0])
		}

		client, err := getClient(cmd.Context())
		if err != nil {
			return err
		}
		if err := client.SetAwayMode(cmd.Context(), on); err != nil {
			return err
		}
		fmt.Printf("Away mode submitted: %s\n", args[0])
		return nil
	},
}

// unitName resolves the display unit for the pulled snapshot.
func unitName(client *icomfort.Client) string {
	if u := client.PreferredUnits(); u != nil {
		return u.String()
	}
	return "F"
}
