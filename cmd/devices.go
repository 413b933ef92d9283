package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/smazurov/audionode/internal/audio"
	"github.com/smazurov/audionode/internal/logging"
	"github.com/smazurov/audionode/pkg/openal"
	"github.com/spf13/cobra"
)

// CreateDevicesCmd creates the devices command.
func CreateDevicesCmd() *cobra.Command {
	var probe bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List OpenAL capture devices",
		Long: `Lists the capture devices the OpenAL runtime reports. ` +
			`With --probe each device is opened at common sample rates and formats to determine what it supports.`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			logging.Initialize(logging.Config{Level: "warn", Format: "text"})

			detector := audio.NewDetector()
			devices, err := detector.ListDevices()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to list devices: %v\n", err)
				os.Exit(1)
			}

			if probe {
				for i, device := range devices {
					probed, probeErr := detector.Probe(device.Name)
					if probeErr != nil {
						continue
					}
					devices[i] = probed
				}
			}

			if jsonOutput {
				out, marshalErr := json.MarshalIndent(devices, "", "  ")
				if marshalErr != nil {
					fmt.Fprintf(os.Stderr, "Failed to encode devices: %v\n", marshalErr)
					os.Exit(1)
				}
				fmt.Println(string(out))
				return
			}

			if len(devices) == 0 {
				fmt.Println("No capture devices found")
				return
			}

			for _, device := range devices {
				marker := " "
				if device.Default {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, device.Name)
				if probe {
					if len(device.SupportedRates) > 0 {
						fmt.Printf("    rates:   %s\n", joinInts(device.SupportedRates))
					}
					if len(device.SupportedFormats) > 0 {
						fmt.Printf("    formats: %s\n", strings.Join(device.SupportedFormats, ", "))
					}
				}
			}

			fmt.Println()
			fmt.Println("Runtime capabilities:")
			for _, name := range openal.CapabilityNames() {
				state := "absent"
				if openal.HasCapability(name) {
					state = "present"
				}
				fmt.Printf("  %-30s %s\n", name, state)
			}
		},
	}

	cmd.Flags().BoolVar(&probe, "probe", false, "Probe each device for supported rates and formats")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
