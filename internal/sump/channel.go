package sump

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Channel is the byte-oriented duplex stream the protocol runs over.
// Writes must transfer every byte or fail, and reads block until data
// is available. The protocol has no resynchronization primitive, so any
// transport failure is fatal for the session.
type Channel interface {
	io.ReadWriter
}

func writeFull(ch Channel, p []byte) error {
	n, err := ch.Write(p)
	if err != nil {
		return fmt.Errorf("%w: write: %v", ErrTransport, err)
	}
	if n != len(p) {
		return fmt.Errorf("%w: short write (%d of %d bytes)", ErrTransport, n, len(p))
	}
	return nil
}

func readFull(ch Channel, p []byte) error {
	if _, err := io.ReadFull(ch, p); err != nil {
		return fmt.Errorf("%w: read: %v", ErrTransport, err)
	}
	return nil
}

func sendFrame(ch Channel, log zerolog.Logger, f Frame) error {
	log.Debug().Stringer("frame", f).Msg("write command")
	return writeFull(ch, f)
}
