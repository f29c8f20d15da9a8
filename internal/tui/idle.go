package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/dejong/internal/scheduler"
)

// idleMsg asks the model to run one step of a registered idle task.
// Messages for a cancelled handle are dropped by the loop.
type idleMsg struct {
	handle scheduler.Handle
}

func idle(h scheduler.Handle) tea.Cmd {
	return func() tea.Msg { return idleMsg{handle: h} }
}

// armed appends an idle command for every task registered since the last
// update.
func (s *session) armed(cmds ...tea.Cmd) tea.Cmd {
	for _, h := range s.loop.Armed() {
		cmds = append(cmds, idle(h))
	}
	return tea.Batch(cmds...)
}

func (s *session) runIdle(msg idleMsg) tea.Cmd {
	if s.loop.Run(msg.handle) {
		return idle(msg.handle)
	}
	return nil
}
