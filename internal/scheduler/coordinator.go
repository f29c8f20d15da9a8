package scheduler

import (
	"errors"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/san-kum/dejong/internal/metrics"
)

// Coordinator turns edits into scheduler lifecycle transitions.
type Coordinator struct {
	sched    *Scheduler
	recorder metrics.Recorder
	log      zerolog.Logger
}

func NewCoordinator(s *Scheduler) *Coordinator {
	return &Coordinator{
		sched:    s,
		recorder: s.recorder,
		log:      s.log.With().Str("component", "coordinator").Logger(),
	}
}

// ParameterChanged discards every accumulated sample and restarts
// accumulation. The first step afterwards repaints unthrottled.
func (c *Coordinator) ParameterChanged() error {
	st := c.sched.state
	c.sched.Stop()
	st.Clear()
	st.Dirty = true
	c.recorder.IncRestart()
	c.log.Debug().Interface("params", st.Params).Msg("parameters changed")
	return c.sched.Start()
}

// Restart throws the current render away and starts over.
func (c *Coordinator) Restart() error { return c.ParameterChanged() }

// LookChanged marks the state dirty after an exposure or gamma edit. The
// histogram is kept. A stopped scheduler repaints at once.
func (c *Coordinator) LookChanged() {
	c.sched.state.Dirty = true
	if !c.sched.Running() {
		c.sched.RenderNow()
	}
}

// ColorChanged repaints synchronously so colour picking tracks the input.
func (c *Coordinator) ColorChanged() {
	c.sched.state.Dirty = true
	c.sched.RenderNow()
}

// Randomize draws new map coefficients and restarts.
func (c *Coordinator) Randomize(rng *rand.Rand) error {
	c.sched.state.Params.Randomize(rng)
	return c.ParameterChanged()
}

// Resize recreates the render buffers. A running scheduler is restarted;
// a stopped one repaints the empty image.
func (c *Coordinator) Resize(width, height int) error {
	wasRunning := c.sched.Running()
	c.sched.Stop()
	if err := c.sched.state.Resize(width, height); err != nil {
		if wasRunning {
			err = errors.Join(err, c.sched.Start())
		}
		return err
	}
	c.log.Debug().Int("width", width).Int("height", height).Msg("resized")
	if wasRunning {
		return c.sched.Start()
	}
	c.sched.RenderNow()
	return nil
}
