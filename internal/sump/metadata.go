package sump

import (
	"encoding/binary"
	"fmt"

	"github.com/rs/zerolog"
)

// MetadataKind selects the variant of a MetadataRecord.
type MetadataKind uint8

const (
	MetadataString MetadataKind = iota
	MetadataU32
	MetadataU8
)

// Record types, from the top 3 bits of the tag byte.
const (
	metaTypeString = 0
	metaTypeU32    = 1
	metaTypeU8     = 2
)

// Well-known u32 slots. Other slots are kept but carry no assigned
// meaning at this protocol version.
const (
	MetaSlotProbeCount     = 0
	MetaSlotSampleMemory   = 1
	MetaSlotClockFrequency = 3
)

// Strings longer than this are truncated; the remainder is still
// consumed so the stream stays synchronized.
const maxMetaStringLen = 256

// MetadataRecord is one decoded record from the extended metadata
// stream. Text is set for MetadataString, Value for the numeric kinds.
type MetadataRecord struct {
	Kind  MetadataKind
	Slot  uint8
	Text  string
	Value uint32
}

// ReadMetadata consumes the self-terminating metadata stream from ch.
// On an unexpected record type it stops early and returns the records
// gathered so far together with an ErrMetadata error; metadata is
// advisory, so callers may proceed with the partial result.
func ReadMetadata(ch Channel, log zerolog.Logger) ([]MetadataRecord, error) {
	var records []MetadataRecord
	var tag [1]byte
	for {
		if err := readFull(ch, tag[:]); err != nil {
			return records, err
		}
		if tag[0] == 0 {
			return records, nil
		}
		slot := tag[0] & 0x1F
		switch tag[0] >> 5 {
		case metaTypeString:
			text, err := readMetaString(ch, log)
			if err != nil {
				return records, err
			}
			log.Info().Uint8("slot", slot).Str("value", text).Msg("metadata string")
			records = append(records, MetadataRecord{Kind: MetadataString, Slot: slot, Text: text})
		case metaTypeU32:
			var raw [4]byte
			if err := readFull(ch, raw[:]); err != nil {
				return records, err
			}
			val := binary.BigEndian.Uint32(raw[:])
			log.Info().Uint8("slot", slot).Uint32("value", val).Msg("metadata u32")
			records = append(records, MetadataRecord{Kind: MetadataU32, Slot: slot, Value: val})
		case metaTypeU8:
			var raw [1]byte
			if err := readFull(ch, raw[:]); err != nil {
				return records, err
			}
			log.Info().Uint8("slot", slot).Uint8("value", raw[0]).Msg("metadata u8")
			records = append(records, MetadataRecord{Kind: MetadataU8, Slot: slot, Value: uint32(raw[0])})
		default:
			return records, fmt.Errorf("%w: unexpected record type %d (tag %#02x)", ErrMetadata, tag[0]>>5, tag[0])
		}
	}
}

func readMetaString(ch Channel, log zerolog.Logger) (string, error) {
	buf := make([]byte, 0, 64)
	var b [1]byte
	for {
		if err := readFull(ch, b[:]); err != nil {
			return "", err
		}
		if b[0] == 0 {
			return string(buf), nil
		}
		if len(buf) >= maxMetaStringLen {
			log.Warn().Msg("truncating excessively long metadata string")
			for b[0] != 0 {
				if err := readFull(ch, b[:]); err != nil {
					return "", err
				}
			}
			return string(buf), nil
		}
		buf = append(buf, b[0])
	}
}

// MergeMetadata applies the well-known u32 slots to the capability
// fields of cfg. Unknown slots and the other record kinds are ignored.
func MergeMetadata(cfg *Config, records []MetadataRecord) {
	for _, rec := range records {
		if rec.Kind != MetadataU32 {
			continue
		}
		switch rec.Slot {
		case MetaSlotProbeCount:
			cfg.NumProbes = rec.Value
		case MetaSlotSampleMemory:
			cfg.SampleMemory = rec.Value
		case MetaSlotClockFrequency:
			cfg.ClkFreqHz = rec.Value
		}
	}
}
