// Package player steps through a recorded operation in the terminal.
package player

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bstviz"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	eventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	focusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// Model is a tea.Model over one step log. Position len(Steps) shows the tree
// after the operation finished.
type Model struct {
	Title string
	Steps []bstviz.Step
	Final bstviz.Snapshot

	pos int
}

// New creates a Model positioned at the first step.
func New(title string, steps []bstviz.Step, final bstviz.Snapshot) Model {
	return Model{Title: title, Steps: steps, Final: final}
}

// Pos returns the index of the step on screen.
func (m Model) Pos() int {
	return m.pos
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update moves between steps on key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "right", "l", "n", " ":
		m.pos = min(m.pos+1, len(m.Steps))
	case "left", "h", "p":
		m.pos = max(m.pos-1, 0)
	case "home", "g":
		m.pos = 0
	case "end", "G":
		m.pos = len(m.Steps)
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// View renders the current step and the tree as it was at that step.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.Title))
	sb.WriteByte('\n')

	snap := m.Final
	focus, hasFocus := 0, false
	if m.pos < len(m.Steps) {
		step := m.Steps[m.pos]
		snap = step.Tree
		focus, hasFocus = Focus(step.Event)
		fmt.Fprintf(&sb, "step %d/%d  %s\n", m.pos+1, len(m.Steps),
			eventStyle.Render(fmt.Sprintf("%s: %s", step.Action(), step.Event)))
	} else {
		fmt.Fprintf(&sb, "done after %d steps  size=%d height=%d\n", len(m.Steps), snap.Size, snap.Height)
	}
	sb.WriteByte('\n')

	for _, line := range strings.Split(snap.String(), "\n") {
		if hasFocus {
			line = highlight(line, focus)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	sb.WriteString(helpStyle.Render("←/→: step | g/G: first/last | q: quit"))
	return sb.String()
}

// Focus returns the node a step is about, if any.
func Focus(e bstviz.Event) (int, bool) {
	switch e := e.(type) {
	case bstviz.Descend:
		return e.Current, true
	case bstviz.Duplicate:
		return e.Current, true
	case bstviz.Visit:
		return e.Current, true
	case bstviz.Found:
		return e.Current, true
	case bstviz.DeleteVisit:
		return e.Current, true
	case bstviz.InsertRoot, bstviz.InsertChild, bstviz.DeleteNoLeft, bstviz.DeleteNoRight, bstviz.DeleteTwoChildren:
		return e.Target(), true
	}
	return 0, false
}

func highlight(line string, value int) string {
	label := strconv.Itoa(value)
	if !strings.HasSuffix(line, "── "+label) {
		return line
	}
	return strings.TrimSuffix(line, label) + focusStyle.Render(label)
}
