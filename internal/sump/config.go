package sump

import (
	"fmt"
	"math/bits"

	"github.com/rs/zerolog"
)

// Config carries the capture parameters for one run. It is built from
// defaults and user input, then enriched by Session.Identify (capability
// fields) and resolved by Derive before the capture is armed.
type Config struct {
	// GroupEnable is a bitmask of enabled 8-bit channel groups. Zero
	// selects every group the device provides.
	GroupEnable uint32

	// Capture starts when (channels & TriggerMask) == TriggerValue.
	// A zero mask triggers immediately.
	TriggerMask  uint32
	TriggerValue uint32

	// ClkDivisor divides the device base clock; must be >= 1.
	ClkDivisor uint32

	// Samples is the requested total sample count. Zero selects the
	// device maximum for the enabled groups.
	Samples uint32

	// BeforeTrig is the number of captured samples preceding the
	// trigger. When AfterTrigSet is true, AfterTrig takes precedence and
	// BeforeTrig is recomputed from it.
	BeforeTrig   uint32
	AfterTrig    uint32
	AfterTrigSet bool

	RLE     bool
	ExtMeta bool

	// Device capabilities, defaulted or learned from extended metadata.
	ClkFreqHz    uint32
	SampleMemory uint32
	NumProbes    uint32

	// Derived by Derive.
	MaxGroups        uint32
	GroupMask        uint32
	NumGroupsEnabled uint32
}

// DefaultConfig returns the papilio pro capture defaults.
func DefaultConfig() Config {
	return Config{
		ClkDivisor:   1,
		BeforeTrig:   4,
		NumProbes:    32,
		SampleMemory: 1 << 16,
		ClkFreqHz:    100_000_000,
	}
}

// Derive resolves group and sample-count fields from the capability
// values. It must run after identification, since extended metadata may
// have updated the capabilities it reads.
func (c *Config) Derive(log zerolog.Logger) error {
	c.MaxGroups = (c.NumProbes + 7) / 8
	c.GroupMask = 1<<c.MaxGroups - 1

	if c.GroupEnable == 0 {
		c.GroupEnable = c.GroupMask
	}
	c.NumGroupsEnabled = uint32(bits.OnesCount32(c.GroupEnable & c.GroupMask))
	if c.NumGroupsEnabled == 0 {
		return fmt.Errorf("%w: no channel groups enabled", ErrConfiguration)
	}
	if c.GroupEnable > c.GroupMask {
		log.Warn().
			Uint32("requested", c.GroupEnable).
			Uint32("available", c.GroupMask).
			Msg("requested more channel groups than available")
	}

	if c.Samples == 0 {
		c.Samples = c.SampleMemory / c.NumGroupsEnabled
	}
	if c.AfterTrigSet {
		after := c.AfterTrig
		if after > c.Samples {
			after = c.Samples
		}
		c.BeforeTrig = c.Samples - after
	}

	// Waveform timing would be undefined; refuse before touching the
	// device.
	if c.ClkFreqHz == 0 {
		return fmt.Errorf("%w: clock frequency is zero", ErrConfiguration)
	}
	return nil
}
