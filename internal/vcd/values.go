package vcd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const (
	MaxValues    = 32
	MaxValueBits = 32
	MaxNameLen   = 32
)

var (
	ErrInvalidValueSpec = errors.New("vcd: invalid value spec")
	ErrTooManyBits      = errors.New("vcd: too many bits in value")
	ErrTooManyValues    = errors.New("vcd: too many values")
)

// Value is one named bit-group in the output. Bits holds single-bit
// masks in declared order, most significant first; Mask is their union.
type Value struct {
	Name string
	Mask uint32
	Bits []uint32
}

// NewValue builds a Value from named masks. Each mask contributes its
// set bits MSB-first, in the order the masks were given. Overlapping
// bits between masks are accepted with a warning.
func NewValue(name string, masks []uint32, log zerolog.Logger) (Value, error) {
	if name == "" || len(name) > MaxNameLen {
		return Value{}, fmt.Errorf("%w: bad name %q", ErrInvalidValueSpec, name)
	}
	if len(masks) == 0 {
		return Value{}, fmt.Errorf("%w: %q has no bit masks", ErrInvalidValueSpec, name)
	}
	v := Value{Name: name}
	for _, mask := range masks {
		if mask&v.Mask != 0 {
			log.Warn().Str("name", name).Msg("overlapping value bits in VCD spec")
		}
		v.Mask |= mask
		for bit := 31; bit >= 0; bit-- {
			bm := uint32(1) << uint(bit)
			if mask&bm == 0 {
				continue
			}
			if len(v.Bits) >= MaxValueBits {
				return Value{}, fmt.Errorf("%w: %q", ErrTooManyBits, name)
			}
			v.Bits = append(v.Bits, bm)
		}
	}
	return v, nil
}

// ParseValueSpec parses the name=mask[,mask...] syntax, e.g.
// "data=0x6,0x80" for a 3-bit value from sample bits 2,1,7 (msb->lsb).
func ParseValueSpec(spec string, log zerolog.Logger) (Value, error) {
	eq := strings.IndexByte(spec, '=')
	if eq <= 0 || eq == len(spec)-1 {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidValueSpec, spec)
	}
	parts := strings.Split(spec[eq+1:], ",")
	masks := make([]uint32, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 0, 32)
		if err != nil {
			return Value{}, fmt.Errorf("%w: bad mask %q in %q", ErrInvalidValueSpec, part, spec)
		}
		masks = append(masks, uint32(n))
	}
	return NewValue(spec[:eq], masks, log)
}
