package scheduler

import (
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dejong/internal/render"
)

var _ = Describe("Coordinator", func() {
	var (
		loop  *countingLoop
		state *render.State
		shell *recordingShell
		clock *clockwork.FakeClock
		sched *Scheduler
		coord *Coordinator
	)

	BeforeEach(func() {
		var err error
		state, err = render.New(80, 60, 3)
		Expect(err).NotTo(HaveOccurred())
		loop = &countingLoop{IdleLoop: NewIdleLoop()}
		shell = &recordingShell{}
		clock = clockwork.NewFakeClock()
		sched = New(loop, state, shell, Options{Quantum: 5000, Clock: clock})
		coord = NewCoordinator(sched)

		Expect(sched.Start()).To(Succeed())
		for i := 0; i < 10; i++ {
			loop.Pump()
			clock.Advance(10 * time.Millisecond)
		}
		Expect(state.Iterations).To(Equal(uint64(50000)))
	})

	Describe("ParameterChanged", func() {
		It("drops every accumulated sample", func() {
			Expect(coord.ParameterChanged()).To(Succeed())
			Expect(state.Iterations).To(BeZero())
			Expect(state.Density).To(BeZero())
			Expect(state.Histogram).To(HaveEach(uint32(0)))
			Expect(state.Dirty).To(BeTrue())
		})

		It("leaves exactly one live task", func() {
			old := sched.Handle()
			Expect(coord.ParameterChanged()).To(Succeed())
			Expect(sched.Running()).To(BeTrue())
			Expect(sched.Handle()).NotTo(Equal(old))
			Expect(loop.Live()).To(Equal(1))
		})

		It("restarts a stopped scheduler", func() {
			sched.Stop()
			Expect(coord.ParameterChanged()).To(Succeed())
			Expect(sched.Running()).To(BeTrue())
		})

		It("forces one unthrottled refresh then resumes pacing", func() {
			before := shell.repaints
			pushes := shell.pushes
			Expect(coord.ParameterChanged()).To(Succeed())
			loop.Pump()
			Expect(shell.repaints).To(Equal(before + 1))
			Expect(shell.pushes).To(Equal(pushes))
			Expect(state.Dirty).To(BeFalse())
			Expect(state.Iterations).To(Equal(uint64(5000)))
		})

		It("survives repeated edits without leaking tasks", func() {
			for i := 0; i < 5; i++ {
				Expect(coord.ParameterChanged()).To(Succeed())
			}
			Expect(loop.Live()).To(Equal(1))
			Expect(loop.registers - loop.cancels).To(Equal(1))
		})
	})

	Describe("LookChanged", func() {
		It("keeps the histogram and marks the state dirty", func() {
			coord.LookChanged()
			Expect(state.Iterations).To(Equal(uint64(50000)))
			Expect(state.Dirty).To(BeTrue())
			Expect(sched.Running()).To(BeTrue())
		})

		It("repaints at once when stopped", func() {
			sched.Stop()
			before := shell.repaints
			coord.LookChanged()
			Expect(shell.repaints).To(Equal(before + 1))
			Expect(state.Dirty).To(BeFalse())
		})
	})

	Describe("ColorChanged", func() {
		It("repaints synchronously", func() {
			before := shell.repaints
			coord.ColorChanged()
			Expect(shell.repaints).To(Equal(before + 1))
			Expect(state.Dirty).To(BeFalse())
			Expect(state.Iterations).To(Equal(uint64(50000)))
		})
	})

	Describe("Randomize", func() {
		It("draws new coefficients and restarts", func() {
			before := state.Params
			Expect(coord.Randomize(rand.New(rand.NewSource(11)))).To(Succeed())
			Expect(state.Params.A).NotTo(Equal(before.A))
			Expect(state.Params.Zoom).To(Equal(before.Zoom))
			Expect(state.Iterations).To(BeZero())
			Expect(sched.Running()).To(BeTrue())
		})
	})

	Describe("Resize", func() {
		It("recreates the buffers and keeps running", func() {
			Expect(coord.Resize(32, 16)).To(Succeed())
			Expect(state.Pixels).To(HaveLen(32 * 16 * 4))
			Expect(state.Iterations).To(BeZero())
			Expect(sched.Running()).To(BeTrue())
			Expect(loop.Live()).To(Equal(1))
		})

		It("rejects bad sizes and resumes", func() {
			err := coord.Resize(0, 16)
			Expect(err).To(MatchError(render.ErrInvalidDimensions))
			Expect(err).NotTo(MatchError(ErrAlreadyRunning))
			Expect(state.Pixels).To(HaveLen(80 * 60 * 4))
			Expect(sched.Running()).To(BeTrue())
			Expect(loop.Live()).To(Equal(1))
		})

		It("stays stopped after a bad size once closed", func() {
			sched.Close()
			Expect(coord.Resize(0, 16)).To(MatchError(render.ErrInvalidDimensions))
			Expect(sched.Running()).To(BeFalse())
			Expect(loop.Live()).To(BeZero())
		})

		It("repaints the empty image when stopped", func() {
			sched.Stop()
			before := shell.repaints
			Expect(coord.Resize(10, 10)).To(Succeed())
			Expect(sched.Running()).To(BeFalse())
			Expect(shell.repaints).To(Equal(before + 1))
			Expect(shell.lastLen).To(Equal(400))
		})
	})

	Describe("Restart", func() {
		It("behaves like a parameter edit", func() {
			Expect(coord.Restart()).To(Succeed())
			Expect(state.Iterations).To(BeZero())
			Expect(sched.Running()).To(BeTrue())
		})
	})
})
