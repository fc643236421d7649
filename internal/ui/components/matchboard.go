package components

import (
	"charm.land/lipgloss/v2"

	"github.com/fluentwave/fluentwave/internal/quiz"
	"github.com/fluentwave/fluentwave/internal/ui/theme"
)

// MatchBoard renders a word-matching board as two columns, Amharic on
// the left and English on the right. Cursor movement is the caller's
// concern; the board itself only knows how to draw token states.
type MatchBoard struct {
	Board *quiz.Board

	// Cursor position: which column and row the learner is on.
	CursorSide quiz.Side
	CursorRow  int
}

// NewMatchBoard wraps a board for rendering.
func NewMatchBoard(b *quiz.Board) MatchBoard {
	return MatchBoard{Board: b, CursorSide: quiz.SideAmharic}
}

// Column returns the tokens for a side.
func (m MatchBoard) Column(side quiz.Side) []string {
	if side == quiz.SideAmharic {
		return m.Board.Amharic()
	}
	return m.Board.English()
}

// MoveUp moves the cursor up within the current column.
func (m *MatchBoard) MoveUp() {
	if m.CursorRow > 0 {
		m.CursorRow--
	}
}

// MoveDown moves the cursor down within the current column.
func (m *MatchBoard) MoveDown() {
	if m.CursorRow < len(m.Column(m.CursorSide))-1 {
		m.CursorRow++
	}
}

// SwitchSide moves the cursor to the other column, clamping the row.
func (m *MatchBoard) SwitchSide() {
	if m.CursorSide == quiz.SideAmharic {
		m.CursorSide = quiz.SideEnglish
	} else {
		m.CursorSide = quiz.SideAmharic
	}
	if max := len(m.Column(m.CursorSide)) - 1; m.CursorRow > max {
		m.CursorRow = max
	}
}

// CursorToken returns the token under the cursor.
func (m MatchBoard) CursorToken() string {
	col := m.Column(m.CursorSide)
	if m.CursorRow < 0 || m.CursorRow >= len(col) {
		return ""
	}
	return col[m.CursorRow]
}

// View renders the two columns side by side.
func (m MatchBoard) View() string {
	left := m.renderColumn(quiz.SideAmharic)
	right := m.renderColumn(quiz.SideEnglish)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "      ", right)
}

func (m MatchBoard) renderColumn(side quiz.Side) string {
	var s string
	pending := m.Board.Pending(side)
	for row, token := range m.Column(side) {
		prefix := "  "
		if side == m.CursorSide && row == m.CursorRow && !m.Board.Completed() {
			prefix = "▸ "
		}
		line := prefix + token

		switch {
		case m.Board.Matched(side, token):
			s += theme.Matched.Render(line) + "\n"
		case token == pending && pending != "":
			s += theme.Selected.Render(line) + "\n"
		case side == quiz.SideAmharic:
			s += theme.Amharic.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
