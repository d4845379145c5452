package dump

import (
	"bytes"
	"testing"

	"github.com/probekit/sumpdump/internal/sump"
)

func testBuffer() *sump.SampleBuffer {
	// Two groups, three samples, newest first on the wire.
	return &sump.SampleBuffer{
		Data:    []byte{0x0C, 0xC0, 0x0B, 0xB0, 0x0A, 0xA0},
		Count:   3,
		RowSize: 2,
	}
}

func TestWriteHexChronological(t *testing.T) {
	var out bytes.Buffer
	if err := WriteHex(&out, testBuffer()); err != nil {
		t.Fatalf("write hex: %v", err)
	}
	want := "0AA0\n0BB0\n0CC0\n"
	if out.String() != want {
		t.Fatalf("hex dump mismatch:\n got  %q\n want %q", out.String(), want)
	}
}

func TestWriteRawChronological(t *testing.T) {
	var out bytes.Buffer
	if err := WriteRaw(&out, testBuffer()); err != nil {
		t.Fatalf("write raw: %v", err)
	}
	want := []byte{0x0A, 0xA0, 0x0B, 0xB0, 0x0C, 0xC0}
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("raw dump mismatch:\n got  % X\n want % X", out.Bytes(), want)
	}
}
