package logging

import "sync/atomic"

// ProgressSampler thins "done of total" events from many workers down to one
// per completed bucket of the total (the first item, every bucket percent,
// and the last item). It is safe for concurrent use.
type ProgressSampler struct {
	total         int64
	bucketPercent float64
	lastBucket    atomic.Int64
}

// NewProgressSampler returns a sampler for total items that emits every
// bucketPercent percent (default 10).
func NewProgressSampler(total int, bucketPercent float64) *ProgressSampler {
	if bucketPercent <= 0 {
		bucketPercent = 10
	}
	s := &ProgressSampler{total: int64(total), bucketPercent: bucketPercent}
	s.lastBucket.Store(-1)
	return s
}

// ShouldLog reports whether reaching done items starts a bucket that has not
// been logged yet. Exactly one caller wins each bucket.
func (s *ProgressSampler) ShouldLog(done int64) bool {
	if s == nil {
		return true
	}
	if s.total <= 0 || done <= 0 {
		return false
	}
	bucket := int64(s.Percent(done) / s.bucketPercent)
	for {
		last := s.lastBucket.Load()
		if bucket <= last {
			return false
		}
		if s.lastBucket.CompareAndSwap(last, bucket) {
			return true
		}
	}
}

// Percent converts done into a completion percentage capped at 100.
func (s *ProgressSampler) Percent(done int64) float64 {
	if s == nil || s.total <= 0 {
		return 0
	}
	return float64(min(done, s.total)) * 100 / float64(s.total)
}
