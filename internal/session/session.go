// Package session wires the comparison engine, timing controller, metrics
// and viewport positioner into one typing session.
//
// A Session is not safe for concurrent use; it is driven from a single
// event loop. Elapsed-time samples are requested through a timing.Sampler
// handle: the caller schedules a timer for each Tick the session hands out
// and passes it back to Tick when it fires.
package session

import (
	"time"

	"github.com/verte-zerg/storytype/internal/engine"
	"github.com/verte-zerg/storytype/internal/normalize"
	"github.com/verte-zerg/storytype/internal/stats"
	"github.com/verte-zerg/storytype/internal/timing"
	"github.com/verte-zerg/storytype/internal/viewport"
)

// Options configures a session.
type Options struct {
	Clock          timing.Clock
	SampleInterval time.Duration
	Folder         normalize.Folder
	Highlight      bool
}

// Update reports what an input or control call changed.
type Update struct {
	// Changed is true when verdicts or the cursor moved.
	Changed bool
	// Overflow is true when input past the passage end was dropped.
	Overflow bool
	// Started is true when the sampler started a new generation; the caller
	// should schedule NextTick.
	Started bool
	// Finished is true when the session reached the finished phase.
	Finished bool
}

// Snapshot is the outward view of a session.
type Snapshot struct {
	Verdicts   []engine.Verdict
	Cursor     int
	Length     int
	Phase      timing.Phase
	Elapsed    time.Duration
	Metrics    stats.Snapshot
	Viewport   viewport.State
	ViewportOK bool
	Highlight  bool
}

// Result summarizes a finished session.
type Result struct {
	Passage   []rune
	Verdicts  []engine.Verdict
	Cursor    int
	StartedAt time.Time
	EndedAt   time.Time
	Elapsed   time.Duration
	Paused    time.Duration
	Metrics   stats.Snapshot
	Correct   int
	Incorrect int
}

// Session owns every piece of state for one passage.
type Session struct {
	passage []rune
	opts    Options

	cmp     *engine.Comparator
	ctl     *timing.Controller
	sampler *timing.Sampler

	metrics stats.Snapshot

	geometry  viewport.Geometry
	container viewport.Container
	view      viewport.State
	viewOK    bool

	highlight bool
	onFinish  func(Result)
}

// New starts an idle session for passage.
func New(passage string, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = timing.SystemClock{}
	}
	s := &Session{
		passage:   []rune(passage),
		opts:      opts,
		sampler:   timing.NewSampler(opts.SampleInterval),
		highlight: opts.Highlight,
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.sampler.Stop()
	s.cmp = engine.New(s.passage, engine.Options{Folder: s.opts.Folder})
	s.ctl = timing.NewController(s.opts.Clock)
	s.container.ScrollTop = 0
	s.refreshMetrics()
	s.refreshViewport()
}

// OnFinish registers a callback invoked once each time the session finishes.
func (s *Session) OnFinish(fn func(Result)) {
	s.onFinish = fn
}

// Input moves the typed buffer to buffer. Input is ignored while paused or
// finished.
func (s *Session) Input(buffer []rune) Update {
	return s.apply(func() engine.Result { return s.cmp.Apply(buffer) })
}

// Type appends one rune.
func (s *Session) Type(r rune) Update {
	return s.apply(func() engine.Result { return s.cmp.Type(r) })
}

// Backspace deletes the last typed rune.
func (s *Session) Backspace() Update {
	return s.apply(s.cmp.Backspace)
}

// DeleteWord deletes the last typed word.
func (s *Session) DeleteWord() Update {
	return s.apply(s.cmp.DeleteWord)
}

func (s *Session) apply(step func() engine.Result) Update {
	switch s.ctl.Phase() {
	case timing.Paused, timing.Finished:
		return Update{}
	}
	res := step()
	u := Update{Changed: res.Changed, Overflow: res.Overflow}
	if s.ctl.Phase() == timing.Idle && s.cmp.Cursor() > 0 {
		s.ctl.Start()
		s.sampler.Start()
		u.Started = true
	}
	if s.cmp.Complete() && s.ctl.Phase() == timing.Running {
		s.finish()
		u.Finished = true
		u.Started = false
	}
	if u.Changed || u.Finished {
		s.refreshMetrics()
		s.refreshViewport()
	}
	return u
}

// Start is implicit on the first typed rune; calling it directly has no
// effect beyond reporting whether the session is running.
func (s *Session) Start() bool {
	return s.ctl.Phase() == timing.Running
}

// PauseToggle pauses a running session or resumes a paused one. Resuming a
// session whose passage is fully typed finishes it instead.
func (s *Session) PauseToggle() Update {
	switch s.ctl.Phase() {
	case timing.Running:
		s.ctl.Pause()
		s.sampler.Stop()
		s.refreshMetrics()
		return Update{}
	case timing.Paused:
		complete := s.cmp.Complete()
		if s.ctl.Resume(complete) {
			s.sampler.Start()
			return Update{Started: true}
		}
		if s.ctl.Phase() == timing.Finished {
			s.sampler.Stop()
			s.refreshMetrics()
			s.notifyFinish()
			return Update{Finished: true}
		}
	}
	return Update{}
}

// Restart discards all progress and rebuilds the session for the same
// passage. Measured geometry is kept.
func (s *Session) Restart() {
	s.reset()
}

// Close stops the sampler. Outstanding ticks are rejected afterwards.
func (s *Session) Close() {
	s.sampler.Stop()
}

// SetHighlightMode toggles correctness coloring without touching verdicts.
func (s *Session) SetHighlightMode(on bool) {
	s.highlight = on
}

// Highlight reports whether correctness coloring is on.
func (s *Session) Highlight() bool {
	return s.highlight
}

// NextTick returns the tick to schedule while the session is running.
func (s *Session) NextTick() (timing.Tick, bool) {
	return s.sampler.Current()
}

// SampleInterval returns the sampling period.
func (s *Session) SampleInterval() time.Duration {
	return s.sampler.Interval()
}

// Tick refreshes live metrics for a fired tick. It returns false for ticks
// cancelled by a pause, finish, restart or close; the caller must not
// reschedule those.
func (s *Session) Tick(t timing.Tick) bool {
	if !s.sampler.Accept(t) {
		return false
	}
	s.refreshMetrics()
	return true
}

// Resize installs new measured geometry and a visible height.
func (s *Session) Resize(g viewport.Geometry, height float64) {
	s.geometry = g
	s.container.Height = height
	s.refreshViewport()
}

// Geometry returns the measured layout.
func (s *Session) Geometry() viewport.Geometry {
	return s.geometry
}

// Passage returns the reference passage.
func (s *Session) Passage() []rune {
	return s.passage
}

// Typed returns the typed buffer.
func (s *Session) Typed() []rune {
	return s.cmp.Typed()
}

// Phase returns the current phase.
func (s *Session) Phase() timing.Phase {
	return s.ctl.Phase()
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Verdicts:   s.cmp.Verdicts(),
		Cursor:     s.cmp.Cursor(),
		Length:     len(s.passage),
		Phase:      s.ctl.Phase(),
		Elapsed:    s.ctl.Elapsed(),
		Metrics:    s.metrics,
		Viewport:   s.view,
		ViewportOK: s.viewOK,
		Highlight:  s.highlight,
	}
}

func (s *Session) finish() {
	s.ctl.Finish()
	s.sampler.Stop()
	s.refreshMetrics()
	s.notifyFinish()
}

func (s *Session) notifyFinish() {
	if s.onFinish == nil {
		return
	}
	correct, incorrect := s.cmp.Counts()
	startedAt := s.ctl.StartedAt()
	elapsed := s.ctl.Elapsed()
	paused := s.ctl.Paused()
	s.onFinish(Result{
		Passage:   s.passage,
		Verdicts:  s.cmp.Verdicts(),
		Cursor:    s.cmp.Cursor(),
		StartedAt: startedAt,
		EndedAt:   startedAt.Add(elapsed + paused),
		Elapsed:   elapsed,
		Paused:    paused,
		Metrics:   s.metrics,
		Correct:   correct,
		Incorrect: incorrect,
	})
}

func (s *Session) refreshMetrics() {
	s.metrics = stats.Live(s.cmp.Verdicts(), s.cmp.Cursor(), s.ctl.Elapsed())
}

func (s *Session) refreshViewport() {
	st, ok := viewport.Position(s.geometry, s.cmp.Cursor(), s.container)
	s.viewOK = ok
	if !ok {
		return
	}
	s.view = st
	s.container.ScrollTop = st.ScrollOffset
}
