// Package dump renders a captured sample buffer as plain text or raw
// binary on an output stream.
package dump

import (
	"bufio"
	"fmt"
	"io"

	"github.com/probekit/sumpdump/internal/sump"
)

// WriteHex writes one sample per line as uppercase hex, earliest sample
// first, most significant enabled group first.
func WriteHex(w io.Writer, buf *sump.SampleBuffer) error {
	bw := bufio.NewWriter(w)
	for r := uint32(0); r < buf.Count; r++ {
		for _, gb := range buf.Row(r) {
			fmt.Fprintf(bw, "%02X", gb)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteRaw writes the sample bytes back to back in chronological order
// with no separators.
func WriteRaw(w io.Writer, buf *sump.SampleBuffer) error {
	for r := uint32(0); r < buf.Count; r++ {
		if _, err := w.Write(buf.Row(r)); err != nil {
			return err
		}
	}
	return nil
}
