package scheduler

import (
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/san-kum/dejong/internal/metrics"
	"github.com/san-kum/dejong/internal/pacing"
	"github.com/san-kum/dejong/internal/render"
)

// DefaultQuantum is the number of samples accumulated per step. It bounds
// how long a step holds the event loop.
const DefaultQuantum = 10000

// Shell is the presentation side. It reads pixels only after a repaint
// request and never mutates them.
type Shell interface {
	RequestRepaint(pixels []byte, width, height int)
	PushStatus(text string)
}

type Options struct {
	Quantum  int
	Clock    clockwork.Clock
	Limiter  *pacing.Limiter
	Recorder metrics.Recorder
	Logger   zerolog.Logger
}

// Scheduler owns the render state while it accumulates.
type Scheduler struct {
	loop     Loop
	state    *render.State
	shell    Shell
	quantum  int
	clock    clockwork.Clock
	limiter  *pacing.Limiter
	recorder metrics.Recorder
	log      zerolog.Logger

	handle Handle
	closed bool
}

func New(loop Loop, state *render.State, shell Shell, opts Options) *Scheduler {
	if opts.Quantum <= 0 {
		opts.Quantum = DefaultQuantum
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Limiter == nil {
		opts.Limiter = pacing.NewLimiter(opts.Clock)
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	return &Scheduler{
		loop:     loop,
		state:    state,
		shell:    shell,
		quantum:  opts.Quantum,
		clock:    opts.Clock,
		limiter:  opts.Limiter,
		recorder: opts.Recorder,
		log:      opts.Logger.With().Str("component", "scheduler").Logger(),
	}
}

func (s *Scheduler) State() *render.State { return s.state }
func (s *Scheduler) Running() bool        { return s.handle != 0 }
func (s *Scheduler) Handle() Handle       { return s.handle }
func (s *Scheduler) Quantum() int         { return s.quantum }

// Start registers Step with the loop.
func (s *Scheduler) Start() error {
	if s.closed {
		return ErrClosed
	}
	if s.handle != 0 {
		return ErrAlreadyRunning
	}
	s.handle = s.loop.Register(s.Step)
	s.log.Debug().Uint64("handle", uint64(s.handle)).Uint64("iterations", s.state.Iterations).Msg("started")
	return nil
}

// Stop cancels the registered task. Calling it while stopped does nothing.
func (s *Scheduler) Stop() {
	if s.handle == 0 {
		return
	}
	h := s.handle
	s.handle = 0
	s.loop.Cancel(h)
	s.log.Debug().Uint64("handle", uint64(h)).Uint64("iterations", s.state.Iterations).Msg("stopped")
}

// Close stops the scheduler for good.
func (s *Scheduler) Close() {
	s.Stop()
	s.closed = true
}

// Step accumulates one quantum and repaints if the limiter allows it. It
// always asks to be run again.
func (s *Scheduler) Step() bool {
	start := s.clock.Now()
	s.state.RunIterations(s.quantum)
	s.recorder.AddIterations(s.quantum)
	s.refresh()
	s.recorder.ObserveStep(s.clock.Since(start))
	return true
}

func (s *Scheduler) refresh() {
	st := s.state
	if !s.limiter.Allow(st.Iterations, st.Dirty) {
		s.recorder.IncRefresh(metrics.RefreshSkipped)
		return
	}
	if st.Dirty {
		s.recorder.IncRefresh(metrics.RefreshDirty)
	} else {
		s.shell.PushStatus(FormatStatus(st.Iterations, st.Density))
		s.recorder.IncRefresh(metrics.RefreshThrottled)
	}
	s.repaint()
}

// RenderNow converts and repaints immediately, whether or not the
// scheduler is running.
func (s *Scheduler) RenderNow() {
	if s.closed {
		return
	}
	s.recorder.IncRefresh(metrics.RefreshForced)
	s.repaint()
}

func (s *Scheduler) repaint() {
	st := s.state
	st.UpdatePixels()
	st.Dirty = false
	s.recorder.SetPeakDensity(st.Density)
	s.shell.RequestRepaint(st.Pixels, st.Width, st.Height)
}
