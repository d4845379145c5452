package vcd

import "fmt"

var (
	timeUnits       = [...]string{"s", "ms", "us", "ns", "ps", "fs"}
	unitMultipliers = [...]uint32{1, 10, 100}
)

// Timescale is the derived VCD time base. One emitted tick stands for
// Multiplier of Unit; Period is the tick count between samples.
type Timescale struct {
	Unit       string
	Multiplier uint32
	Period     float64
}

func (ts Timescale) String() string {
	return fmt.Sprintf("%d%s", ts.Multiplier, ts.Unit)
}

// DeriveTimescale picks the time base for a capture clocked at
// clkFreqHz / clkDivisor. It scales a power-of-ten counter until the
// sample period expressed in that scale reaches 100 ticks, which keeps
// emitted timestamps as round numbers while preserving resolution.
// Running out of SI units is a programming contract violation.
func DeriveTimescale(clkDivisor, clkFreqHz uint32) Timescale {
	divisor := float64(clkDivisor)
	freq := float64(clkFreqHz)
	scale := 1.0
	ntens := 0
	for divisor*scale/freq < 100.0 {
		scale *= 10.0
		ntens++
	}
	if ntens/3 >= len(timeUnits) {
		panic(fmt.Sprintf("vcd: no SI unit for time scale 1e-%d s", ntens))
	}
	return Timescale{
		Unit:       timeUnits[ntens/3],
		Multiplier: unitMultipliers[ntens%3],
		Period:     divisor * scale / freq,
	}
}
