package scheduler

import "fmt"

// FormatStatus renders the progress message shown after a paced refresh.
func FormatStatus(iterations uint64, density uint32) string {
	return fmt.Sprintf("Iterations:    %.3e        Peak density:    %d", float64(iterations), density)
}

// StatusLine holds at most one message. Each push replaces the previous one.
type StatusLine struct {
	text string
}

func (l *StatusLine) Push(text string) {
	l.text = text
}

func (l *StatusLine) Text() string { return l.text }
