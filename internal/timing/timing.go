// Package timing tracks session phases and active elapsed time.
package timing

import "time"

// Phase is a session phase.
type Phase int

const (
	// Idle means no rune has been typed yet.
	Idle Phase = iota
	// Running means elapsed time is accumulating.
	Running
	// Paused means elapsed time is frozen until resume.
	Paused
	// Finished is terminal.
	Finished
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Controller owns the phase machine and the pause accounting. Invalid
// transitions are no-ops.
type Controller struct {
	clock Clock

	phase        Phase
	startedAt    time.Time
	pausedTotal  time.Duration
	pauseBeganAt time.Time
	finishedAt   time.Time
}

// NewController returns an idle controller. A nil clock uses SystemClock.
func NewController(clock Clock) *Controller {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Controller{clock: clock}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// StartedAt returns when the first rune was typed, or the zero time.
func (c *Controller) StartedAt() time.Time {
	return c.startedAt
}

// Start moves idle to running and reports whether it did.
func (c *Controller) Start() bool {
	if c.phase != Idle {
		return false
	}
	c.phase = Running
	c.startedAt = c.clock.Now()
	return true
}

// Pause moves running to paused and reports whether it did.
func (c *Controller) Pause() bool {
	if c.phase != Running {
		return false
	}
	c.phase = Paused
	c.pauseBeganAt = c.clock.Now()
	return true
}

// Resume moves paused to running and reports whether it did. When complete
// is true the session moves to finished instead and Resume returns false.
func (c *Controller) Resume(complete bool) bool {
	if c.phase != Paused {
		return false
	}
	now := c.closePause()
	if complete {
		c.phase = Finished
		c.finishedAt = now
		return false
	}
	c.phase = Running
	return true
}

// Finish moves running or paused to finished and reports whether it did.
func (c *Controller) Finish() bool {
	switch c.phase {
	case Running:
		c.finishedAt = c.clock.Now()
	case Paused:
		c.finishedAt = c.closePause()
	default:
		return false
	}
	c.phase = Finished
	return true
}

// Reset returns the controller to idle with zeroed accumulators.
func (c *Controller) Reset() {
	c.phase = Idle
	c.startedAt = time.Time{}
	c.pausedTotal = 0
	c.pauseBeganAt = time.Time{}
	c.finishedAt = time.Time{}
}

// Elapsed returns active time: wall time since start minus paused time.
// It does not grow while paused or finished.
func (c *Controller) Elapsed() time.Duration {
	var end time.Time
	switch c.phase {
	case Idle:
		return 0
	case Running:
		end = c.clock.Now()
	case Paused:
		end = c.pauseBeganAt
	case Finished:
		end = c.finishedAt
	}
	elapsed := end.Sub(c.startedAt) - c.pausedTotal
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Paused returns the total paused time, including an open pause.
func (c *Controller) Paused() time.Duration {
	if c.phase == Paused {
		return c.pausedTotal + c.clock.Now().Sub(c.pauseBeganAt)
	}
	return c.pausedTotal
}

// closePause folds the open pause interval into pausedTotal and returns
// the time it ended.
func (c *Controller) closePause() time.Time {
	now := c.clock.Now()
	c.pausedTotal += now.Sub(c.pauseBeganAt)
	c.pauseBeganAt = time.Time{}
	return now
}
