package vcd

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/probekit/sumpdump/internal/sump"
)

// Encoder writes a VCD document from a captured sample buffer. Values
// are declared in insertion order and assigned identifier characters
// starting at '!'. Now is injectable so output stays reproducible; it
// defaults to time.Now.
type Encoder struct {
	Values []Value
	Now    func() time.Time
}

// Encode emits the full document: header, variable declarations, the
// initial $dumpvars state, then change-compressed samples in
// chronological order. The final sample always emits every value so the
// trace closes cleanly.
func (e *Encoder) Encode(w io.Writer, buf *sump.SampleBuffer, ts Timescale) error {
	if len(e.Values) == 0 {
		return fmt.Errorf("%w: no values configured", ErrInvalidValueSpec)
	}
	if len(e.Values) > MaxValues {
		return fmt.Errorf("%w: %d configured, max %d", ErrTooManyValues, len(e.Values), MaxValues)
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "$date\n  %s\n$end\n", now().Format(time.ANSIC))
	fmt.Fprintf(bw, "$version\n  sumpdump\n$end\n")
	fmt.Fprintf(bw, "$timescale %s $end\n", ts)
	for i, v := range e.Values {
		fmt.Fprintf(bw, "$var wire %d %c %s $end\n", len(v.Bits), identFor(i), v.Name)
	}
	fmt.Fprintf(bw, "$enddefinitions $end\n")

	fmt.Fprintf(bw, "$dumpvars\n")
	for i, v := range e.Values {
		writeValue(bw, v, identFor(i), 0)
	}
	fmt.Fprintf(bw, "$end\n")

	var prev uint32
	for r := uint32(0); r < buf.Count; r++ {
		cur := buf.Word(r)
		changed := prev ^ cur
		last := r == buf.Count-1
		wroteTime := false
		for i, v := range e.Values {
			if !last && changed&v.Mask == 0 {
				continue
			}
			if !wroteTime {
				fmt.Fprintf(bw, "#%d\n", uint64(float64(r)*ts.Period))
				wroteTime = true
			}
			writeValue(bw, v, identFor(i), cur)
		}
		prev = cur
	}
	return bw.Flush()
}

func identFor(i int) byte { return byte('!' + i) }

func writeValue(w *bufio.Writer, v Value, id byte, sample uint32) {
	if len(v.Bits) == 1 {
		bit := byte('0')
		if sample&v.Mask != 0 {
			bit = '1'
		}
		w.WriteByte(bit)
		w.WriteByte(id)
		w.WriteByte('\n')
		return
	}
	w.WriteByte('b')
	for _, bm := range v.Bits {
		if sample&bm != 0 {
			w.WriteByte('1')
		} else {
			w.WriteByte('0')
		}
	}
	w.WriteByte(' ')
	w.WriteByte(id)
	w.WriteByte('\n')
}
