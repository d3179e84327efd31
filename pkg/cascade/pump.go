package cascade

import tea "github.com/charmbracelet/bubbletea"

// Pump drives m without a terminal: it runs cmd, feeds the resulting message
// to Update, and keeps going with whatever Update returns until no commands
// are left. Batches run in order; tea.QuitMsg stops the pump.
func Pump(m tea.Model, cmd tea.Cmd) tea.Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			return m
		default:
			var follow tea.Cmd
			m, follow = m.Update(msg)
			queue = append(queue, follow)
		}
	}
	return m
}
