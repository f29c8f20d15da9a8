package scheduler

// recordingShell keeps what the scheduler hands to the presentation side.
type recordingShell struct {
	status   StatusLine
	pushes   int
	repaints int
	lastLen  int
	lastW    int
	lastH    int
}

func (r *recordingShell) RequestRepaint(pixels []byte, width, height int) {
	r.repaints++
	r.lastLen = len(pixels)
	r.lastW, r.lastH = width, height
}

func (r *recordingShell) PushStatus(text string) {
	r.pushes++
	r.status.Push(text)
}

// countingLoop wraps an IdleLoop and counts cancellations.
type countingLoop struct {
	*IdleLoop
	registers int
	cancels   int
}

func (c *countingLoop) Register(task Task) Handle {
	c.registers++
	return c.IdleLoop.Register(task)
}

func (c *countingLoop) Cancel(h Handle) {
	c.cancels++
	c.IdleLoop.Cancel(h)
}
