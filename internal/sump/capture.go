package sump

import (
	"github.com/rs/zerolog"
)

// Controller arms the device and retrieves the sample buffer. The device
// is a simple state machine primed by sequential writes, so command
// order matters and nothing here runs concurrently.
type Controller struct {
	Ch  Channel
	Log zerolog.Logger
}

// Capture issues the full arm sequence for cfg and bulk-reads the
// resulting samples. cfg must already have been resolved by Derive.
// Requested counts beyond the device limits are clamped with a warning.
func (ctl *Controller) Capture(cfg *Config) (*SampleBuffer, error) {
	for i := 0; i < resetRepeat; i++ {
		if err := ctl.send(Reset); err != nil {
			return nil, err
		}
	}
	if err := ctl.send(SetDivider(cfg.ClkDivisor - 1)); err != nil {
		return nil, err
	}
	if err := ctl.armTrigger(cfg); err != nil {
		return nil, err
	}

	maxSamples := cfg.SampleMemory / cfg.NumGroupsEnabled
	captureSamples := cfg.Samples
	if captureSamples > maxSamples {
		ctl.Log.Warn().
			Uint32("requested", cfg.Samples).
			Uint32("max", maxSamples).
			Msg("requested more samples than the device maximum")
		captureSamples = maxSamples
	}
	beforeSamples := cfg.BeforeTrig
	if beforeSamples > captureSamples {
		ctl.Log.Warn().
			Uint32("requested", cfg.BeforeTrig).
			Uint32("captured", captureSamples).
			Msg("requested more samples before trigger than number captured")
		beforeSamples = captureSamples
	}

	// Counts are in 4-sample units; remainders are dropped by the
	// protocol.
	if err := ctl.send(SetCounts(uint16(captureSamples/4), uint16((captureSamples-beforeSamples)/4))); err != nil {
		return nil, err
	}

	groupDisable := ^cfg.GroupEnable & cfg.GroupMask
	if err := ctl.send(SetFlags(groupDisable, false, false, false, false, cfg.RLE)); err != nil {
		return nil, err
	}
	if err := ctl.send(Run); err != nil {
		return nil, err
	}

	buf := &SampleBuffer{
		Data:    make([]byte, captureSamples*cfg.NumGroupsEnabled),
		Count:   captureSamples,
		RowSize: cfg.NumGroupsEnabled,
	}
	if err := readFull(ctl.Ch, buf.Data); err != nil {
		return nil, err
	}
	return buf, nil
}

// armTrigger writes all four trigger stages. With no trigger condition
// stage 0 fires immediately; otherwise stage 0 carries the condition and
// stages 1-3 are written as disabled fallbacks, since the trigger engine
// requires every stage to be programmed.
func (ctl *Controller) armTrigger(cfg *Config) error {
	if cfg.TriggerMask == 0 {
		if err := ctl.send(SetTriggerMask(0, 0)); err != nil {
			return err
		}
		if err := ctl.send(SetTriggerValue(0, 0)); err != nil {
			return err
		}
		return ctl.send(SetTriggerConfig(0, 0, 0, 0, false, true))
	}

	if err := ctl.send(SetTriggerMask(0, cfg.TriggerMask)); err != nil {
		return err
	}
	if err := ctl.send(SetTriggerValue(0, cfg.TriggerValue)); err != nil {
		return err
	}
	if err := ctl.send(SetTriggerConfig(0, 0, 0, 0, false, true)); err != nil {
		return err
	}
	for stage := uint32(1); stage < 4; stage++ {
		if err := ctl.send(SetTriggerMask(stage, 0)); err != nil {
			return err
		}
		if err := ctl.send(SetTriggerValue(stage, 0)); err != nil {
			return err
		}
		if err := ctl.send(SetTriggerConfig(stage, 0, 3, 0, false, false)); err != nil {
			return err
		}
	}
	return nil
}

func (ctl *Controller) send(f Frame) error {
	return sendFrame(ctl.Ch, ctl.Log, f)
}
