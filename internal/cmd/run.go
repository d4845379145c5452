package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/probekit/sumpdump/internal/config"
	"github.com/probekit/sumpdump/internal/dump"
	"github.com/probekit/sumpdump/internal/sump"
	"github.com/probekit/sumpdump/internal/transport"
	"github.com/probekit/sumpdump/internal/vcd"
)

type options struct {
	device string
	baud   uint
	output string
	raw    bool
	cfg    sump.Config
	values []vcd.Value
}

func runCapture(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd, args)
	if err != nil {
		return err
	}

	ch, err := transport.Open(opts.device, opts.baud)
	if err != nil {
		return err
	}
	defer ch.Close()

	out := io.Writer(os.Stdout)
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("cmd: create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	return capture(ch, opts.cfg, opts.values, opts.raw, out, log.Logger, time.Now)
}

// buildOptions merges defaults, the optional profile and the flags that
// were explicitly set, in that order.
func buildOptions(cmd *cobra.Command, args []string) (options, error) {
	opts := options{cfg: sump.DefaultConfig(), baud: transport.DefaultBaudRate}
	f := cmd.Flags()

	if path, _ := f.GetString("profile"); path != "" {
		p, err := config.Load(path, &opts.cfg)
		if err != nil {
			return options{}, err
		}
		opts.device = p.Device
		opts.raw = p.Raw
		if p.BaudRate != 0 {
			opts.baud = p.BaudRate
		}
		values, err := p.VCDValues(log.Logger)
		if err != nil {
			return options{}, err
		}
		opts.values = values
	}

	if len(args) == 1 {
		opts.device = args[0]
	}
	if opts.device == "" {
		return options{}, errors.New("cmd: no device given (argument or profile)")
	}

	if f.Changed("baud") {
		opts.baud, _ = f.GetUint("baud")
	}
	if f.Changed("raw") {
		opts.raw, _ = f.GetBool("raw")
	}
	opts.output, _ = f.GetString("output")

	if f.Changed("groups") {
		opts.cfg.GroupEnable, _ = f.GetUint32("groups")
	}
	if f.Changed("trigger") {
		raw, _ := f.GetString("trigger")
		mask, value, err := parseTrigger(raw)
		if err != nil {
			return options{}, err
		}
		opts.cfg.TriggerMask = mask
		opts.cfg.TriggerValue = value
	}
	if f.Changed("divisor") {
		v, _ := f.GetUint32("divisor")
		if v == 0 {
			return options{}, errors.New("cmd: divisor must be >= 1")
		}
		opts.cfg.ClkDivisor = v
	}
	if f.Changed("samples") {
		opts.cfg.Samples, _ = f.GetUint32("samples")
	}
	if f.Changed("before") {
		opts.cfg.BeforeTrig, _ = f.GetUint32("before")
	}
	if f.Changed("after") {
		opts.cfg.AfterTrig, _ = f.GetUint32("after")
		opts.cfg.AfterTrigSet = true
	}
	if f.Changed("rle") {
		opts.cfg.RLE, _ = f.GetBool("rle")
	}
	if f.Changed("extmeta") {
		opts.cfg.ExtMeta, _ = f.GetBool("extmeta")
	}
	if f.Changed("clk-freq") {
		raw, _ := f.GetString("clk-freq")
		v, err := parseSIValue(raw, "hz")
		if err != nil {
			return options{}, err
		}
		opts.cfg.ClkFreqHz = v
	}
	if f.Changed("sample-memory") {
		raw, _ := f.GetString("sample-memory")
		v, err := parseSIValue(raw, "B")
		if err != nil {
			return options{}, err
		}
		opts.cfg.SampleMemory = v
	}
	if f.Changed("num-probes") {
		opts.cfg.NumProbes, _ = f.GetUint32("num-probes")
	}
	if f.Changed("vcd") {
		specs, _ := f.GetStringArray("vcd")
		if len(specs) > vcd.MaxValues {
			return options{}, fmt.Errorf("cmd: too many VCD values: %d (max %d)", len(specs), vcd.MaxValues)
		}
		values := make([]vcd.Value, 0, len(specs))
		for _, spec := range specs {
			v, err := vcd.ParseValueSpec(spec, log.Logger)
			if err != nil {
				return options{}, err
			}
			values = append(values, v)
		}
		opts.values = values
	}
	return opts, nil
}

// capture runs the full pipeline against an already-open channel:
// identify, derive, arm, retrieve, render. Output format selection
// follows the original tool: VCD when values are configured, otherwise
// raw or hex.
func capture(ch sump.Channel, cfg sump.Config, values []vcd.Value, raw bool, out io.Writer, logger zerolog.Logger, now func() time.Time) error {
	sess := &sump.Session{Ch: ch, Log: logger}
	if err := sess.Identify(&cfg); err != nil {
		return err
	}
	if err := cfg.Derive(logger); err != nil {
		return err
	}

	ctl := &sump.Controller{Ch: ch, Log: logger}
	buf, err := ctl.Capture(&cfg)
	if err != nil {
		return err
	}

	switch {
	case len(values) > 0:
		ts := vcd.DeriveTimescale(cfg.ClkDivisor, cfg.ClkFreqHz)
		logger.Info().
			Float64("capture_hz", float64(cfg.ClkFreqHz)/float64(cfg.ClkDivisor)).
			Float64("period", ts.Period).
			Stringer("timescale", ts).
			Msg("encoding waveform")
		enc := &vcd.Encoder{Values: values, Now: now}
		return enc.Encode(out, buf, ts)
	case raw:
		return dump.WriteRaw(out, buf)
	default:
		return dump.WriteHex(out, buf)
	}
}
