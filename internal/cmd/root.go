// Package cmd wires the command-line surface to the capture pipeline.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/probekit/sumpdump/internal/transport"
)

var rootCmd = &cobra.Command{
	Use:   "sumpdump [device]",
	Short: "Capture samples from a SUMP logic analyzer",
	Long: `sumpdump drives a logic analyzer speaking the SUMP protocol over a
serial port, captures a triggered sample buffer and dumps it as hex,
raw binary or a VCD waveform trace.

Example: sumpdump /dev/ttyUSB1 --trigger 0x1=0x1 --groups 3 --divisor 11`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCapture,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.Flags()
	f.StringP("profile", "p", "", "TOML capture profile to load")
	f.StringP("output", "o", "", "output path (default stdout)")
	f.Uint("baud", transport.DefaultBaudRate, "serial baud rate")
	f.Uint32("groups", 0, "bitmask of 8-channel groups to enable (default all)")
	f.String("trigger", "", "trigger condition as mask=value")
	f.Uint32("divisor", 1, "clock divisor for the capture rate")
	f.Uint32("samples", 0, "samples to capture (default device maximum)")
	f.Uint32("before", 4, "samples to keep preceding the trigger")
	f.Uint32("after", 0, "samples to keep after the trigger (overrides --before)")
	f.Bool("rle", false, "enable RLE sample compression (experimental)")
	f.Bool("raw", false, "dump samples as raw binary instead of hex")
	f.StringArray("vcd", nil, "VCD value as name=mask[,mask...], repeatable")
	f.Bool("extmeta", false, "query extended device metadata for capabilities")
	f.String("clk-freq", "", "capture clock frequency in Hz (K/M suffixes allowed)")
	f.String("sample-memory", "", "device sample memory in bytes (K/M suffixes allowed)")
	f.Uint32("num-probes", 0, "number of probes provided by the device")

	rootCmd.AddCommand(newProfileCmd())
}
