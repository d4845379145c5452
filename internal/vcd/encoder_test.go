package vcd

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/probekit/sumpdump/internal/sump"
)

func fixedNow() time.Time {
	return time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC)
}

func testValues(t *testing.T) []Value {
	t.Helper()
	clock, err := ParseValueSpec("clock=0x1", zerolog.Nop())
	if err != nil {
		t.Fatalf("parse clock: %v", err)
	}
	data, err := ParseValueSpec("data=0x6", zerolog.Nop())
	if err != nil {
		t.Fatalf("parse data: %v", err)
	}
	return []Value{clock, data}
}

func TestEncodeChangeCompression(t *testing.T) {
	// One group, three chronological samples: 0x01, 0x01, 0x05. The
	// middle sample changes nothing and must emit nothing; the final
	// sample emits every value.
	buf := &sump.SampleBuffer{
		Data:    []byte{0x05, 0x01, 0x01},
		Count:   3,
		RowSize: 1,
	}
	ts := DeriveTimescale(1, 100_000_000)
	enc := &Encoder{Values: testValues(t), Now: fixedNow}

	var out bytes.Buffer
	if err := enc.Encode(&out, buf, ts); err != nil {
		t.Fatalf("encode: %v", err)
	}

	want := "$date\n" +
		"  Fri Jan  2 15:04:05 2026\n" +
		"$end\n" +
		"$version\n" +
		"  sumpdump\n" +
		"$end\n" +
		"$timescale 10ns $end\n" +
		"$var wire 1 ! clock $end\n" +
		"$var wire 2 \" data $end\n" +
		"$enddefinitions $end\n" +
		"$dumpvars\n" +
		"0!\n" +
		"b00 \"\n" +
		"$end\n" +
		"#0\n" +
		"1!\n" +
		"#200\n" +
		"1!\n" +
		"b10 \"\n"
	if out.String() != want {
		t.Fatalf("document mismatch:\n got:\n%s\n want:\n%s", out.String(), want)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	buf := &sump.SampleBuffer{
		Data:    []byte{0x03, 0x02, 0x01, 0x00},
		Count:   4,
		RowSize: 1,
	}
	ts := DeriveTimescale(1, 100_000_000)
	enc := &Encoder{Values: testValues(t), Now: fixedNow}

	var first bytes.Buffer
	if err := enc.Encode(&first, buf, ts); err != nil {
		t.Fatalf("encode: %v", err)
	}
	for i := 0; i < 3; i++ {
		var again bytes.Buffer
		if err := enc.Encode(&again, buf, ts); err != nil {
			t.Fatalf("encode: %v", err)
		}
		if !bytes.Equal(first.Bytes(), again.Bytes()) {
			t.Fatalf("encoding differs between runs")
		}
	}
}

func TestEncodeRejectsEmptyAndOversizedValueSets(t *testing.T) {
	buf := &sump.SampleBuffer{Data: []byte{0x00}, Count: 1, RowSize: 1}
	ts := DeriveTimescale(1, 100_000_000)

	enc := &Encoder{Now: fixedNow}
	if err := enc.Encode(&bytes.Buffer{}, buf, ts); err == nil {
		t.Fatalf("expected error for empty value set")
	}

	many := make([]Value, MaxValues+1)
	for i := range many {
		many[i] = Value{Name: "v", Mask: 1, Bits: []uint32{1}}
	}
	enc = &Encoder{Values: many, Now: fixedNow}
	if err := enc.Encode(&bytes.Buffer{}, buf, ts); err == nil {
		t.Fatalf("expected error for oversized value set")
	}
}
