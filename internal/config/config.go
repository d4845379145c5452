// Package config loads the optional TOML capture profile and overlays
// it onto the capture defaults. Command-line flags are applied on top by
// the cmd layer, so precedence is defaults < profile < flags.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/probekit/sumpdump/internal/sump"
	"github.com/probekit/sumpdump/internal/vcd"
)

// Profile is the on-disk capture profile. Only keys present in the file
// override the defaults; Load tracks definedness via toml.MetaData.
type Profile struct {
	Device       string      `toml:"device"`
	BaudRate     uint        `toml:"baud_rate"`
	Groups       uint32      `toml:"groups"`
	TriggerMask  uint32      `toml:"trigger_mask"`
	TriggerValue uint32      `toml:"trigger_value"`
	Divisor      uint32      `toml:"divisor"`
	Samples      uint32      `toml:"samples"`
	Before       uint32      `toml:"before"`
	After        uint32      `toml:"after,omitempty"`
	RLE          bool        `toml:"rle"`
	Raw          bool        `toml:"raw"`
	ExtMeta      bool        `toml:"extmeta"`
	ClkFreqHz    uint32      `toml:"clk_freq_hz"`
	SampleMemory uint32      `toml:"sample_memory"`
	NumProbes    uint32      `toml:"num_probes"`
	Values       []ValueSpec `toml:"values"`
}

// ValueSpec names one VCD bit-group, with the same mask semantics as the
// vcd=name=mask,mask command-line syntax.
type ValueSpec struct {
	Name string   `toml:"name"`
	Bits []uint32 `toml:"bits"`
}

// Load reads the profile at path and overlays its defined keys onto cfg.
func Load(path string, cfg *sump.Config) (Profile, error) {
	var p Profile
	meta, err := toml.DecodeFile(path, &p)
	if err != nil {
		return Profile{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := validate(p, meta); err != nil {
		return Profile{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	apply(p, meta, cfg)
	return p, nil
}

func validate(p Profile, meta toml.MetaData) error {
	if meta.IsDefined("divisor") && p.Divisor == 0 {
		return fmt.Errorf("divisor must be >= 1")
	}
	if len(p.Values) > vcd.MaxValues {
		return fmt.Errorf("too many values: %d (max %d)", len(p.Values), vcd.MaxValues)
	}
	for i, v := range p.Values {
		if v.Name == "" {
			return fmt.Errorf("values[%d] missing name", i)
		}
		if len(v.Name) > vcd.MaxNameLen {
			return fmt.Errorf("values[%d] name too long", i)
		}
		if len(v.Bits) == 0 {
			return fmt.Errorf("values[%d] missing bits", i)
		}
	}
	return nil
}

func apply(p Profile, meta toml.MetaData, cfg *sump.Config) {
	if meta.IsDefined("groups") {
		cfg.GroupEnable = p.Groups
	}
	if meta.IsDefined("trigger_mask") {
		cfg.TriggerMask = p.TriggerMask
	}
	if meta.IsDefined("trigger_value") {
		cfg.TriggerValue = p.TriggerValue
	}
	if meta.IsDefined("divisor") {
		cfg.ClkDivisor = p.Divisor
	}
	if meta.IsDefined("samples") {
		cfg.Samples = p.Samples
	}
	if meta.IsDefined("before") {
		cfg.BeforeTrig = p.Before
	}
	if meta.IsDefined("after") {
		cfg.AfterTrig = p.After
		cfg.AfterTrigSet = true
	}
	if meta.IsDefined("rle") {
		cfg.RLE = p.RLE
	}
	if meta.IsDefined("extmeta") {
		cfg.ExtMeta = p.ExtMeta
	}
	if meta.IsDefined("clk_freq_hz") {
		cfg.ClkFreqHz = p.ClkFreqHz
	}
	if meta.IsDefined("sample_memory") {
		cfg.SampleMemory = p.SampleMemory
	}
	if meta.IsDefined("num_probes") {
		cfg.NumProbes = p.NumProbes
	}
}

// VCDValues converts the profile's value specs into encoder values,
// preserving their declaration order.
func (p Profile) VCDValues(log zerolog.Logger) ([]vcd.Value, error) {
	if len(p.Values) == 0 {
		return nil, nil
	}
	values := make([]vcd.Value, 0, len(p.Values))
	for _, spec := range p.Values {
		v, err := vcd.NewValue(spec.Name, spec.Bits, log)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
