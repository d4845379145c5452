package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/probekit/sumpdump/internal/sump"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadOverlaysOnlyDefinedKeys(t *testing.T) {
	path := writeProfile(t, `
groups = 3
divisor = 11
trigger_mask = 1
trigger_value = 1
after = 300
`)
	cfg := sump.DefaultConfig()
	if _, err := Load(path, &cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GroupEnable != 3 || cfg.ClkDivisor != 11 {
		t.Fatalf("defined keys not applied: %+v", cfg)
	}
	if cfg.TriggerMask != 1 || cfg.TriggerValue != 1 {
		t.Fatalf("trigger not applied: %+v", cfg)
	}
	if !cfg.AfterTrigSet || cfg.AfterTrig != 300 {
		t.Fatalf("after not applied: %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.BeforeTrig != 4 || cfg.ClkFreqHz != 100_000_000 {
		t.Fatalf("defaults clobbered: %+v", cfg)
	}
}

func TestLoadRejectsZeroDivisor(t *testing.T) {
	path := writeProfile(t, "divisor = 0\n")
	cfg := sump.DefaultConfig()
	if _, err := Load(path, &cfg); err == nil {
		t.Fatalf("expected error for zero divisor")
	}
}

func TestLoadRejectsBadValueSpecs(t *testing.T) {
	cases := map[string]string{
		"missing name": "[[values]]\nbits = [1]\n",
		"missing bits": "[[values]]\nname = \"clock\"\n",
	}
	for name, body := range cases {
		cfg := sump.DefaultConfig()
		if _, err := Load(writeProfile(t, body), &cfg); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestProfileVCDValuesPreserveOrder(t *testing.T) {
	p := Profile{Values: []ValueSpec{
		{Name: "clock", Bits: []uint32{0x1}},
		{Name: "data", Bits: []uint32{0x6, 0x80}},
	}}
	values, err := p.VCDValues(zerolog.Nop())
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if len(values) != 2 || values[0].Name != "clock" || values[1].Name != "data" {
		t.Fatalf("value order mismatch: %+v", values)
	}
	if values[1].Mask != 0x86 {
		t.Fatalf("data mask mismatch: %#x", values[1].Mask)
	}
}

func TestTemplateRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
	cfg := sump.DefaultConfig()
	p, err := Load(path, &cfg)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	want := DefaultProfile()
	if p.Device != want.Device || p.BaudRate != want.BaudRate {
		t.Fatalf("template device mismatch: %+v", p)
	}
	if cfg.ClkDivisor != 1 || cfg.NumProbes != 32 || cfg.SampleMemory != 1<<16 {
		t.Fatalf("template defaults mismatch: %+v", cfg)
	}
	if cfg.AfterTrigSet {
		t.Fatalf("template must not define an after-trigger count")
	}
	if len(p.Values) != 2 {
		t.Fatalf("template values mismatch: %+v", p.Values)
	}
}
