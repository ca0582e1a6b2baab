package vlist

// Estimator maintains an equal-weighted running mean of observed item sizes.
// It backs classification when per-item geometry has not been measured ahead
// of a pass.
//
// Adding a new sample and revising a previously added one are different
// operations with different denominators, so they are exposed separately:
// conflating them drifts the mean.
type Estimator struct {
	mean    float64
	samples int
}

// Add folds a new sample into the mean.
func (e *Estimator) Add(size int64) {
	e.samples++
	e.mean += (float64(size) - e.mean) / float64(e.samples)
}

// Correct revises the contribution of one already-observed sample from old to
// updated, keeping the sample count constant. With zero samples it is a
// no-op.
func (e *Estimator) Correct(old, updated int64) {
	if e.samples == 0 {
		return
	}
	e.mean += float64(updated-old) / float64(e.samples)
}

// Mean returns the current running mean, 0 with zero samples.
func (e *Estimator) Mean() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.mean
}

// Samples returns the number of observed sizes.
func (e *Estimator) Samples() int {
	return e.samples
}

// Seeded reports whether at least one sample has been observed. An unseeded
// estimator supports no classification.
func (e *Estimator) Seeded() bool {
	return e.samples > 0
}

// ApproxIndex approximates the index of the item covering position pos in a
// list of count items, assuming every item is mean-sized. The result is
// clamped to [0, count-1]. Returns 0 when unseeded or the list is empty.
func (e *Estimator) ApproxIndex(pos int64, count int) int {
	if count <= 0 || !e.Seeded() || e.mean <= 0 {
		return 0
	}
	if pos < 0 {
		return 0
	}
	idx := int(float64(pos) / e.mean)
	if idx >= count {
		idx = count - 1
	}
	return idx
}
