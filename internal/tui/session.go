package tui

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/san-kum/dejong/internal/export"
	"github.com/san-kum/dejong/internal/render"
	"github.com/san-kum/dejong/internal/scheduler"
	"github.com/san-kum/dejong/internal/viz"
)

const historyLen = 60

// session is the presentation shell. The bubbletea model is copied on
// every update, so everything the scheduler holds on to lives here.
type session struct {
	loop  *scheduler.IdleLoop
	state *render.State
	sched *scheduler.Scheduler
	coord *scheduler.Coordinator
	store *export.Store
	rng   *rand.Rand
	log   zerolog.Logger

	status  scheduler.StatusLine
	alert   string
	palette string

	cols, rows int
	frame      string
	repaints   int
	history    []float64
}

func (s *session) RequestRepaint(pixels []byte, width, height int) {
	s.repaints++
	s.history = append(s.history, float64(s.state.Density))
	if len(s.history) > historyLen {
		s.history = s.history[1:]
	}
	s.redraw(pixels, width, height)
}

func (s *session) PushStatus(text string) {
	s.status.Push(text)
}

// redraw rebuilds the cached frame string. View only ever reads it.
func (s *session) redraw(pixels []byte, width, height int) {
	w, h := viz.FitCells(width, height, s.cols, s.rows)
	if w == 0 || h == 0 {
		s.frame = ""
		return
	}
	c := viz.NewCanvas(w, h)
	viz.Draw(c, viz.FramePixels(pixels, width, height), s.state.Look.Background)
	s.frame = c.Render(s.state.Look.Background)
}

func (s *session) setViewport(cols, rows int) {
	if cols == s.cols && rows == s.rows {
		return
	}
	s.cols, s.rows = cols, rows
	st := s.state
	s.redraw(st.Pixels, st.Width, st.Height)
}

func (s *session) save() {
	path, err := s.store.Save(s.state.Image())
	if err != nil {
		s.log.Error().Err(err).Msg("save failed")
		s.alert = err.Error()
		return
	}
	s.log.Info().Str("path", path).Uint64("iterations", s.state.Iterations).Msg("saved")
	s.alert = ""
	s.status.Push("Saved " + path)
}
