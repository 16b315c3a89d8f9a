package timing

import "time"

// DefaultSampleInterval yields ten elapsed-time samples per second.
const DefaultSampleInterval = 100 * time.Millisecond

// Tick identifies one scheduled sample. It is only honoured by the sampler
// generation that issued it.
type Tick struct {
	Gen uint64
}

// Sampler is a cancellable repeating-task handle. The caller schedules the
// actual timer and hands each fired Tick back to Accept; Stop invalidates
// every outstanding Tick immediately.
type Sampler struct {
	interval time.Duration
	gen      uint64
	active   bool
}

// NewSampler returns a stopped sampler. A non-positive interval uses
// DefaultSampleInterval.
func NewSampler(interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	return &Sampler{interval: interval}
}

// Interval returns the sampling period.
func (s *Sampler) Interval() time.Duration {
	return s.interval
}

// Start begins a new generation and returns its first Tick.
func (s *Sampler) Start() Tick {
	s.gen++
	s.active = true
	return Tick{Gen: s.gen}
}

// Stop cancels the current generation.
func (s *Sampler) Stop() {
	if !s.active {
		return
	}
	s.gen++
	s.active = false
}

// Active reports whether a generation is running.
func (s *Sampler) Active() bool {
	return s.active
}

// Current returns the Tick of the running generation.
func (s *Sampler) Current() (Tick, bool) {
	if !s.active {
		return Tick{}, false
	}
	return Tick{Gen: s.gen}, true
}

// Accept reports whether t belongs to the running generation.
func (s *Sampler) Accept(t Tick) bool {
	return s.active && t.Gen == s.gen
}
