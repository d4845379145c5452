package main

import (
	"fmt"
	"os"

	"github.com/probekit/sumpdump/internal/cmd"
	"github.com/probekit/sumpdump/internal/logging"
)

func main() {
	logging.ConfigureRuntime()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sumpdump: %v\n", err)
		os.Exit(1)
	}
}
