// Package transport opens the physical serial channel to the analyzer.
// The protocol core only sees it as a blocking byte stream.
package transport

import (
	"fmt"
	"io"

	"github.com/jacobsa/go-serial/serial"
)

const DefaultBaudRate = 115200

// Open configures the port for raw 8N1 operation. MinimumReadSize 1
// keeps reads blocking until the device produces data, which is the
// contract the protocol layer expects.
func Open(device string, baudRate uint) (io.ReadWriteCloser, error) {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	port, err := serial.Open(serial.OpenOptions{
		PortName:          device,
		BaudRate:          baudRate,
		DataBits:          8,
		StopBits:          1,
		ParityMode:        serial.PARITY_NONE,
		RTSCTSFlowControl: false,
		MinimumReadSize:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: open %s: %w", device, err)
	}
	return port, nil
}
