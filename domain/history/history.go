package history

// Buffer keeps the most recent sharpness scores, oldest first. Once full,
// each Append evicts the oldest entry. The zero value is not usable; call New.
// Not safe for concurrent use: the sampling loop is the only writer.
type Buffer struct {
	capacity int
	values   []float64
}

// New returns an empty buffer holding at most capacity scores (minimum 1).
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{capacity: capacity, values: make([]float64, 0, capacity)}
}

// Append adds score at the end and keeps only the last Capacity entries.
func (b *Buffer) Append(score float64) {
	if len(b.values) < b.capacity {
		b.values = append(b.values, score)
		return
	}
	copy(b.values, b.values[1:])
	b.values[len(b.values)-1] = score
}

// Values returns a snapshot in insertion order. The caller owns the slice.
func (b *Buffer) Values() []float64 {
	out := make([]float64, len(b.values))
	copy(out, b.values)
	return out
}

// Latest returns the newest score.
func (b *Buffer) Latest() (float64, bool) {
	if len(b.values) == 0 {
		return 0, false
	}
	return b.values[len(b.values)-1], true
}

func (b *Buffer) Len() int      { return len(b.values) }
func (b *Buffer) Capacity() int { return b.capacity }
