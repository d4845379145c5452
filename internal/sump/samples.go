package sump

// SampleBuffer holds one capture exactly as read from the device. The
// wire convention is most-recent-first: the last RowSize bytes of Data
// belong to the earliest sample. Row applies the inversion, so consumers
// iterate rows 0..Count-1 for time-ascending order.
type SampleBuffer struct {
	Data    []byte
	Count   uint32
	RowSize uint32
}

// Row returns the bytes of chronological sample r, most significant
// enabled group first.
func (b *SampleBuffer) Row(r uint32) []byte {
	off := (b.Count - 1 - r) * b.RowSize
	return b.Data[off : off+b.RowSize]
}

// Word packs chronological sample r into a single value, most
// significant group byte first.
func (b *SampleBuffer) Word(r uint32) uint32 {
	var v uint32
	for _, gb := range b.Row(r) {
		v = v<<8 | uint32(gb)
	}
	return v
}
