package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fluentwave/fluentwave/internal/ui/theme"
)

// OptionList is a multiple-choice selector. It does not know which
// option is correct; after the answer is judged elsewhere, Resolve
// tells it what to highlight.
type OptionList struct {
	Prompt   string
	Options  []string
	Selected int

	Submitted    bool
	ChosenIndex  int
	CorrectIndex int
}

// NewOptionList creates a selector over the given options.
func NewOptionList(prompt string, options []string) OptionList {
	return OptionList{
		Prompt:       prompt,
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Init returns nil.
func (m OptionList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation. Enter records the choice; the
// caller submits it for judgment and calls Resolve with the result.
func (m OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	}

	return m, nil
}

// Resolve records which option was correct so View can color the result.
func (m *OptionList) Resolve(correctIndex int) {
	m.CorrectIndex = correctIndex
}

// View renders the option list.
func (m OptionList) View() string {
	var s string
	if m.Prompt != "" {
		s = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Prompt) + "\n\n"
	}

	labels := []string{"A", "B", "C", "D", "E", "F"}

	for i, opt := range m.Options {
		label := ""
		if i < len(labels) {
			label = labels[i] + ")  "
		}
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s%s", prefix, label, opt)

		switch {
		case m.Submitted && i == m.CorrectIndex:
			s += theme.Correct.Render(line) + "\n"
		case m.Submitted && i == m.ChosenIndex:
			s += theme.Incorrect.Render(line) + "\n"
		case m.Submitted:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}
