package sump

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// SUMP opcodes. Short commands are a bare opcode; long commands carry a
// four byte little-endian payload.
const (
	opReset          = 0x00
	opRun            = 0x01
	opQueryID        = 0x02
	opQueryMetadata  = 0x04
	opSetDivider     = 0x80
	opSetCounts      = 0x81
	opSetFlags       = 0x82
	opSetTriggerMask = 0xC0
	opSetTriggerVal  = 0xC1
	opSetTriggerCfg  = 0xC2
)

// Frame is one encoded command, either 1 or 5 bytes. Constructors return
// fresh values; frames are never mutated after construction.
type Frame []byte

func (f Frame) String() string {
	parts := make([]string, len(f))
	for i, b := range f {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

var (
	Reset         = Frame{opReset}
	Run           = Frame{opRun}
	QueryID       = Frame{opQueryID}
	QueryMetadata = Frame{opQueryMetadata}
)

// SetDivider programs the sample clock divider. The device samples at
// base_clock / (div + 1); callers pass divisor - 1.
func SetDivider(div uint32) Frame {
	if div>>24 != 0 {
		panic(fmt.Sprintf("sump: divider %#x exceeds 24 bits", div))
	}
	return Frame{opSetDivider, byte(div), byte(div >> 8), byte(div >> 16), 0}
}

// SetCounts programs the total read count and the post-trigger delay
// count, both in units of 4 samples.
func SetCounts(readCount, delayCount uint16) Frame {
	f := Frame{opSetCounts, 0, 0, 0, 0}
	binary.LittleEndian.PutUint16(f[1:3], readCount)
	binary.LittleEndian.PutUint16(f[3:5], delayCount)
	return f
}

// SetFlags programs the capture flags. groupDisable is a 4-bit mask of
// channel groups to exclude from the sample stream.
func SetFlags(groupDisable uint32, demux, filter, external, inverted, rle bool) Frame {
	if groupDisable>>4 != 0 {
		panic(fmt.Sprintf("sump: group disable mask %#x exceeds 4 bits", groupDisable))
	}
	var b1 byte = byte(groupDisable << 2)
	if demux {
		b1 |= 0x01
	}
	if filter {
		b1 |= 0x02
	}
	if external {
		b1 |= 0x40
	}
	if inverted {
		b1 |= 0x80
	}
	var b2 byte
	if rle {
		b2 |= 0x01
	}
	return Frame{opSetFlags, b1, b2, 0, 0}
}

// SetTriggerMask programs the channel mask for one trigger stage.
func SetTriggerMask(stage, mask uint32) Frame {
	f := Frame{opSetTriggerMask | byte(checkStage(stage))<<2, 0, 0, 0, 0}
	binary.LittleEndian.PutUint32(f[1:5], mask)
	return f
}

// SetTriggerValue programs the match value for one trigger stage.
func SetTriggerValue(stage, value uint32) Frame {
	f := Frame{opSetTriggerVal | byte(checkStage(stage))<<2, 0, 0, 0, 0}
	binary.LittleEndian.PutUint32(f[1:5], value)
	return f
}

// SetTriggerConfig programs delay, arm level, serial channel and start
// flag for one trigger stage.
func SetTriggerConfig(stage uint32, delay uint16, level, channel uint32, serial, start bool) Frame {
	checkStage(stage)
	if level > 3 {
		panic(fmt.Sprintf("sump: trigger level %d exceeds 2 bits", level))
	}
	if channel > 31 {
		panic(fmt.Sprintf("sump: trigger channel %d exceeds 5 bits", channel))
	}
	f := Frame{opSetTriggerCfg | byte(stage)<<2, 0, 0, 0, 0}
	binary.LittleEndian.PutUint16(f[1:3], delay)
	f[3] = byte((channel&0xF)<<4 | level)
	f[4] = byte(channel >> 4)
	if serial {
		f[4] |= 0x4
	}
	if start {
		f[4] |= 0x8
	}
	return f
}

func checkStage(stage uint32) uint32 {
	if stage > 3 {
		panic(fmt.Sprintf("sump: trigger stage %d out of range", stage))
	}
	return stage
}
