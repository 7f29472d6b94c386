package sharpness

import "sync"

// Scratch planes (intensity and Laplacian response) are recycled across ticks.

var planePool sync.Pool // stores *[]float64

// acquirePlane returns a buffer of exactly n elements. Contents are undefined.
func acquirePlane(n int) *[]float64 {
	if v := planePool.Get(); v != nil {
		p := v.(*[]float64)
		if cap(*p) >= n {
			*p = (*p)[:n]
			return p
		}
	}
	buf := make([]float64, n)
	return &buf
}

// releasePlane returns p to the pool. p must not be used afterwards.
func releasePlane(p *[]float64) {
	if p == nil || cap(*p) == 0 {
		return
	}
	planePool.Put(p)
}
