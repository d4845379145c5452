package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/probekit/sumpdump/internal/sump"
	"github.com/probekit/sumpdump/internal/testutil/testlog"
	"github.com/probekit/sumpdump/internal/vcd"
)

// scriptedChannel feeds prepared device responses and swallows commands.
type scriptedChannel struct {
	reads *bytes.Reader
}

func (c *scriptedChannel) Read(p []byte) (int, error)  { return c.reads.Read(p) }
func (c *scriptedChannel) Write(p []byte) (int, error) { return len(p), nil }

// deviceResponses is the ident string followed by an 8-byte sample
// buffer for a two-group, four-sample capture. The device sends samples
// newest first.
func deviceResponses() []byte {
	return []byte{
		'1', 'A', 'L', 'S',
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88,
	}
}

func testCaptureConfig() sump.Config {
	cfg := sump.DefaultConfig()
	cfg.NumProbes = 16
	cfg.GroupEnable = 0x3
	cfg.Samples = 4
	cfg.BeforeTrig = 0
	return cfg
}

func runPipeline(t *testing.T, values []vcd.Value, raw bool) []byte {
	t.Helper()
	ch := &scriptedChannel{reads: bytes.NewReader(deviceResponses())}
	var out bytes.Buffer
	now := func() time.Time { return time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC) }
	if err := capture(ch, testCaptureConfig(), values, raw, &out, zerolog.Nop(), now); err != nil {
		t.Fatalf("capture: %v", err)
	}
	return out.Bytes()
}

func TestCaptureHexOutput(t *testing.T) {
	testlog.Start(t)

	got := runPipeline(t, nil, false)
	want := "7788\n5566\n3344\n1122\n"
	if string(got) != want {
		t.Fatalf("hex output mismatch:\ngot:\n%swant:\n%s", got, want)
	}
}

func TestCaptureRawOutput(t *testing.T) {
	got := runPipeline(t, nil, true)
	want := []byte{0x77, 0x88, 0x55, 0x66, 0x33, 0x44, 0x11, 0x22}
	if !bytes.Equal(got, want) {
		t.Fatalf("raw output mismatch: got % X, want % X", got, want)
	}
}

func TestCaptureVCDOutputIsDeterministic(t *testing.T) {
	testlog.Start(t)

	clock, err := vcd.ParseValueSpec("clock=0x1", zerolog.Nop())
	if err != nil {
		t.Fatalf("parse value spec: %v", err)
	}
	data, err := vcd.ParseValueSpec("data=0xFF00", zerolog.Nop())
	if err != nil {
		t.Fatalf("parse value spec: %v", err)
	}
	values := []vcd.Value{clock, data}

	first := runPipeline(t, values, false)
	if len(first) == 0 {
		t.Fatal("empty VCD document")
	}
	if !bytes.Contains(first, []byte("$timescale 10ns $end")) {
		t.Fatalf("missing derived timescale in:\n%s", first)
	}
	if !bytes.Contains(first, []byte("$var wire 1 ! clock $end")) {
		t.Fatalf("missing clock declaration in:\n%s", first)
	}
	if !bytes.Contains(first, []byte("$var wire 8 \" data $end")) {
		t.Fatalf("missing data declaration in:\n%s", first)
	}

	for i := 0; i < 3; i++ {
		again := runPipeline(t, values, false)
		if !bytes.Equal(first, again) {
			t.Fatalf("VCD output not reproducible on run %d:\nfirst:\n%s\nagain:\n%s", i, first, again)
		}
	}
}

func TestCaptureIdentMismatchFails(t *testing.T) {
	ch := &scriptedChannel{reads: bytes.NewReader([]byte("BOGUS"))}
	var out bytes.Buffer
	err := capture(ch, testCaptureConfig(), nil, false, &out, zerolog.Nop(), time.Now)
	if err == nil {
		t.Fatal("expected identification error")
	}
	if out.Len() != 0 {
		t.Fatalf("output written despite failure: %q", out.Bytes())
	}
}
