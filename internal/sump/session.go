package sump

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// The protocol requires redundant resets to force the device out of any
// unknown state.
const resetRepeat = 5

var deviceIdent = []byte("1ALS")

// Session drives identification and capability discovery for one device.
type Session struct {
	Ch  Channel
	Log zerolog.Logger
}

// Identify resets the device and verifies its identity response. When
// cfg.ExtMeta is set it also retrieves extended metadata and merges the
// well-known slots into cfg. A malformed metadata stream is logged and
// tolerated; an identity mismatch is fatal and non-retryable.
func (s *Session) Identify(cfg *Config) error {
	for i := 0; i < resetRepeat; i++ {
		if err := sendFrame(s.Ch, s.Log, Reset); err != nil {
			return err
		}
	}
	if err := sendFrame(s.Ch, s.Log, QueryID); err != nil {
		return err
	}
	var ident [4]byte
	if err := readFull(s.Ch, ident[:]); err != nil {
		return err
	}
	if !bytes.Equal(ident[:], deviceIdent) {
		return fmt.Errorf("%w: unexpected ident %q", ErrIdentification, ident)
	}
	s.Log.Info().Msg("sump device found")

	if !cfg.ExtMeta {
		return nil
	}
	if err := sendFrame(s.Ch, s.Log, QueryMetadata); err != nil {
		return err
	}
	records, err := ReadMetadata(s.Ch, s.Log)
	if err != nil {
		if !errors.Is(err, ErrMetadata) {
			return err
		}
		s.Log.Warn().Err(err).Msg("metadata collection stopped early")
	}
	MergeMetadata(cfg, records)
	return nil
}
