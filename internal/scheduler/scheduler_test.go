package scheduler

import (
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/san-kum/dejong/internal/metrics"
	"github.com/san-kum/dejong/internal/render"
)

var _ = Describe("Scheduler", func() {
	var (
		loop  *countingLoop
		state *render.State
		shell *recordingShell
		clock *clockwork.FakeClock
		sched *Scheduler
	)

	BeforeEach(func() {
		var err error
		state, err = render.New(64, 48, 1)
		Expect(err).NotTo(HaveOccurred())
		loop = &countingLoop{IdleLoop: NewIdleLoop()}
		shell = &recordingShell{}
		clock = clockwork.NewFakeClock()
		sched = New(loop, state, shell, Options{Quantum: 1000, Clock: clock})
	})

	Describe("Start", func() {
		It("registers exactly one task", func() {
			Expect(sched.Start()).To(Succeed())
			Expect(sched.Running()).To(BeTrue())
			Expect(sched.Handle()).NotTo(BeZero())
			Expect(loop.Live()).To(Equal(1))
		})

		It("refuses a second start while running", func() {
			Expect(sched.Start()).To(Succeed())
			h := sched.Handle()
			Expect(sched.Start()).To(MatchError(ErrAlreadyRunning))
			Expect(sched.Handle()).To(Equal(h))
			Expect(loop.registers).To(Equal(1))
			Expect(loop.Live()).To(Equal(1))
		})

		It("can start again after a stop", func() {
			Expect(sched.Start()).To(Succeed())
			sched.Stop()
			Expect(sched.Start()).To(Succeed())
			Expect(loop.Live()).To(Equal(1))
		})
	})

	Describe("Stop", func() {
		It("is idempotent", func() {
			Expect(sched.Start()).To(Succeed())
			sched.Stop()
			sched.Stop()
			Expect(loop.cancels).To(Equal(1))
			Expect(sched.Running()).To(BeFalse())
			Expect(sched.Handle()).To(BeZero())
			Expect(loop.Live()).To(BeZero())
		})

		It("does nothing when never started", func() {
			sched.Stop()
			Expect(loop.cancels).To(BeZero())
		})

		It("ends the step sequence", func() {
			Expect(sched.Start()).To(Succeed())
			loop.Pump()
			sched.Stop()
			Expect(loop.Pump()).To(BeZero())
			Expect(state.Iterations).To(Equal(uint64(1000)))
		})
	})

	Describe("Step", func() {
		It("always asks to continue and advances by one quantum", func() {
			for i := 1; i <= 5; i++ {
				Expect(sched.Step()).To(BeTrue())
				Expect(state.Iterations).To(Equal(uint64(i * 1000)))
			}
		})

		It("keeps iterations non-decreasing while pumped", func() {
			Expect(sched.Start()).To(Succeed())
			var last uint64
			for i := 0; i < 50; i++ {
				loop.Pump()
				clock.Advance(time.Millisecond)
				Expect(state.Iterations).To(BeNumerically(">=", last))
				last = state.Iterations
			}
			Expect(last).To(Equal(uint64(50000)))
		})

		It("repaints the first step and throttles the following ones", func() {
			sched.Step()
			Expect(shell.repaints).To(Equal(1))
			Expect(shell.pushes).To(Equal(1))
			sched.Step()
			sched.Step()
			Expect(shell.repaints).To(Equal(1))
		})

		It("hands over a full pixel buffer", func() {
			sched.Step()
			Expect(shell.lastLen).To(Equal(64 * 48 * 4))
			Expect(shell.lastW).To(Equal(64))
			Expect(shell.lastH).To(Equal(48))
		})
	})

	Describe("dirty state", func() {
		BeforeEach(func() {
			sched.Step()
			Expect(shell.repaints).To(Equal(1))
		})

		It("bypasses the limiter without touching the status", func() {
			state.Dirty = true
			sched.Step()
			Expect(shell.repaints).To(Equal(2))
			Expect(shell.pushes).To(Equal(1))
		})

		It("clears after one refresh so pacing resumes", func() {
			state.Dirty = true
			sched.Step()
			Expect(state.Dirty).To(BeFalse())
			sched.Step()
			Expect(shell.repaints).To(Equal(2))
		})

		It("repaints every dirty step regardless of elapsed time", func() {
			for i := 0; i < 5; i++ {
				state.Dirty = true
				sched.Step()
			}
			Expect(shell.repaints).To(Equal(6))
		})
	})

	Describe("RenderNow", func() {
		It("repaints synchronously while stopped", func() {
			state.Dirty = true
			sched.RenderNow()
			Expect(shell.repaints).To(Equal(1))
			Expect(state.Dirty).To(BeFalse())
			Expect(sched.Running()).To(BeFalse())
		})
	})

	Describe("Close", func() {
		It("stops and refuses further starts", func() {
			Expect(sched.Start()).To(Succeed())
			sched.Close()
			Expect(sched.Running()).To(BeFalse())
			Expect(sched.Start()).To(MatchError(ErrClosed))
			sched.RenderNow()
			Expect(shell.repaints).To(BeZero())
			sched.Stop()
			Expect(loop.cancels).To(Equal(1))
		})
	})

	Describe("a 400x400 render", func() {
		var reg *prom.Registry

		BeforeEach(func() {
			var err error
			state, err = render.New(400, 400, 1)
			Expect(err).NotTo(HaveOccurred())
			reg = prom.NewRegistry()
			rec := metrics.NewPrometheusRecorder(reg)
			sched = New(loop, state, shell, Options{Quantum: 10000, Clock: clock, Recorder: rec})
		})

		It("paces refreshes and reports the final count", func() {
			Expect(sched.Start()).To(Succeed())
			for _, gap := range []time.Duration{25, 25, 25, 25, 50} {
				clock.Advance(gap * time.Millisecond)
				Expect(loop.Pump()).To(Equal(1))
			}

			Expect(state.Iterations).To(Equal(uint64(50000)))
			Expect(shell.repaints).To(Equal(4))
			Expect(shell.repaints).To(BeNumerically("<", 5))
			Expect(shell.status.Text()).To(ContainSubstring("5.000e+04"))
			Expect(shell.status.Text()).To(Equal(FormatStatus(50000, state.Density)))
			Expect(state.Density).To(BeNumerically(">", 0))

			expected := `
# HELP dejong_refreshes_total Refresh decisions by reason
# TYPE dejong_refreshes_total counter
dejong_refreshes_total{reason="skipped"} 1
dejong_refreshes_total{reason="throttled"} 4
# HELP dejong_iterations_total Map samples accumulated across all renders
# TYPE dejong_iterations_total counter
dejong_iterations_total 50000
`
			Expect(testutil.GatherAndCompare(reg, strings.NewReader(expected),
				"dejong_refreshes_total", "dejong_iterations_total")).To(Succeed())
		})
	})
})
