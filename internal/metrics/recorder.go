package metrics

import "time"

// RefreshReason labels why a refresh was or was not pushed.
type RefreshReason string

const (
	RefreshThrottled RefreshReason = "throttled" // accepted by the limiter
	RefreshDirty     RefreshReason = "dirty"     // limiter bypassed after an edit
	RefreshForced    RefreshReason = "forced"    // synchronous render-now
	RefreshSkipped   RefreshReason = "skipped"   // rejected by the limiter
)

// Recorder receives scheduler observations. Implementations must tolerate
// nil receivers so a recorder can be optional.
type Recorder interface {
	AddIterations(n int)
	IncRefresh(reason RefreshReason)
	IncRestart()
	SetPeakDensity(d uint32)
	ObserveStep(d time.Duration)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) AddIterations(int)         {}
func (NoopRecorder) IncRefresh(RefreshReason)  {}
func (NoopRecorder) IncRestart()               {}
func (NoopRecorder) SetPeakDensity(uint32)     {}
func (NoopRecorder) ObserveStep(time.Duration) {}
