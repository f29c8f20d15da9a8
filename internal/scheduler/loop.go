package scheduler

import "slices"

// Task is one unit of repeating work. Returning false unregisters it.
type Task func() bool

// Handle identifies a registered task. The zero Handle means none.
type Handle uint64

// Loop is an event loop able to run tasks between its own events.
type Loop interface {
	Register(task Task) Handle
	Cancel(h Handle)
}

// IdleLoop is a dispatch table of idle tasks. A host calls Run for each
// handle it was told about through Armed, or Pump to run every live task
// once.
type IdleLoop struct {
	next  Handle
	tasks map[Handle]Task
	order []Handle
	armed []Handle
}

func NewIdleLoop() *IdleLoop {
	return &IdleLoop{tasks: make(map[Handle]Task)}
}

func (l *IdleLoop) Register(task Task) Handle {
	l.next++
	h := l.next
	l.tasks[h] = task
	l.order = append(l.order, h)
	l.armed = append(l.armed, h)
	return h
}

// Cancel unregisters h. Unknown or already cancelled handles are ignored.
func (l *IdleLoop) Cancel(h Handle) {
	if _, ok := l.tasks[h]; !ok {
		return
	}
	delete(l.tasks, h)
	l.order = slices.DeleteFunc(l.order, func(o Handle) bool { return o == h })
	l.armed = slices.DeleteFunc(l.armed, func(o Handle) bool { return o == h })
}

// Armed returns and forgets the handles registered since the last call.
func (l *IdleLoop) Armed() []Handle {
	armed := l.armed
	l.armed = nil
	return armed
}

// Run dispatches h once. It reports whether h is still registered and
// wants to run again.
func (l *IdleLoop) Run(h Handle) bool {
	task, ok := l.tasks[h]
	if !ok {
		return false
	}
	if !task() {
		l.Cancel(h)
		return false
	}
	_, ok = l.tasks[h]
	return ok
}

// Pump runs every live task once in registration order and returns how
// many ran.
func (l *IdleLoop) Pump() int {
	ran := 0
	for _, h := range slices.Clone(l.order) {
		if _, ok := l.tasks[h]; !ok {
			continue
		}
		l.Run(h)
		ran++
	}
	return ran
}

// Live is the number of registered tasks.
func (l *IdleLoop) Live() int { return len(l.tasks) }
