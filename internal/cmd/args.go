package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseSIValue parses a number with an optional decimal K/M suffix and
// an optional unit name, e.g. "100M", "16KB", "100mhz". Hex input is
// accepted without a suffix.
func parseSIValue(raw, unit string) (uint32, error) {
	s := strings.TrimSpace(raw)
	base := 10
	digits := "0123456789"
	body := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		body = s[2:]
		digits = "0123456789abcdefABCDEF"
	}
	cut := 0
	for cut < len(body) && strings.ContainsRune(digits, rune(body[cut])) {
		cut++
	}
	if cut == 0 {
		return 0, fmt.Errorf("cmd: invalid number %q", raw)
	}
	v, err := strconv.ParseUint(body[:cut], base, 64)
	if err != nil {
		return 0, fmt.Errorf("cmd: invalid number %q: %w", raw, err)
	}
	rest := body[cut:]
	if rest != "" {
		switch rest[0] {
		case 'M', 'm':
			v *= 1_000_000
			rest = rest[1:]
		case 'K', 'k':
			v *= 1000
			rest = rest[1:]
		}
	}
	if rest != "" && !strings.EqualFold(rest, unit) {
		return 0, fmt.Errorf("cmd: invalid %s value %q", unit, raw)
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("cmd: value %q out of range", raw)
	}
	return uint32(v), nil
}

// parseTrigger parses the mask=value trigger condition syntax.
func parseTrigger(raw string) (mask, value uint32, err error) {
	left, right, ok := strings.Cut(raw, "=")
	if !ok {
		return 0, 0, fmt.Errorf("cmd: trigger must be mask=value, got %q", raw)
	}
	m, err := strconv.ParseUint(strings.TrimSpace(left), 0, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("cmd: invalid trigger mask in %q", raw)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(right), 0, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("cmd: invalid trigger value in %q", raw)
	}
	return uint32(m), uint32(v), nil
}
