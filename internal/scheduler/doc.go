// Package scheduler drives progressive rendering cooperatively.
//
// A [Scheduler] registers its [Scheduler.Step] as a repeating task on a
// [Loop]. Each step accumulates one quantum of samples and, when the pacing
// limiter agrees, converts the histogram to pixels and hands them to the
// [Shell]. Steps never finish on their own; only [Scheduler.Stop] ends the
// sequence.
//
// A [Coordinator] reacts to edits. Parameter edits stop the scheduler,
// discard the histogram, mark the state dirty and start again, so the next
// step repaints without waiting for the limiter.
//
// # Threading
//
// Everything here runs on the host's single event goroutine. Tasks are
// dispatched between the host's own events, never concurrently with them,
// so the render state needs no locking. Stop must only be called between
// steps.
//
//	loop := scheduler.NewIdleLoop()
//	sched := scheduler.New(loop, state, shell, scheduler.Options{})
//	sched.Start()
//	for {
//	    loop.Pump()
//	}
package scheduler
