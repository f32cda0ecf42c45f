package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"notesai/internal/note/model"
)

func (m Model) View() string {
	var body string
	switch m.session.Screen {
	case ScreenAuth:
		body = renderAuth(m)
	case ScreenList:
		body = renderList(m.session, m.styles, listWindow{cursor: m.cursor, offset: m.offset, rows: m.rows, width: m.width}, m.viewport.View())
	case ScreenEditor:
		body = renderEditor(m.session, m)
	}

	var status string
	switch {
	case m.busy:
		status = m.spinner.View() + " Working..."
	case m.errMsg != "":
		status = m.styles.Error.Render(m.errMsg)
	case m.notice != "":
		status = m.styles.Notice.Render(m.notice)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Header.Render("AI Notes"),
		"",
		body,
		"",
		lipgloss.NewStyle().MaxWidth(m.width).Render(status),
		m.styles.Footer.MaxWidth(m.width).Render(helpLine(m.session.Screen, m.selected())),
	)
}

func renderAuth(m Model) string {
	heading := "Log in"
	toggle := "ctrl+t: create an account instead"
	if m.signup {
		heading = "Sign up"
		toggle = "ctrl+t: log in with an existing account"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(heading),
		"",
		m.styles.Label.Render("Email"),
		m.email.View(),
		m.styles.Label.Render("Password"),
		m.password.View(),
		"",
		m.styles.Muted.Render(toggle),
	)
}

// listWindow is the visible slice of the note list.
type listWindow struct {
	cursor int
	offset int
	rows   int
	width  int
}

func renderList(s *Session, st Styles, win listWindow, detail string) string {
	if len(s.Notes) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			st.Title.Render("Your notes"),
			"",
			st.Muted.Render("No notes yet. Press n to create your first note."),
		)
	}

	end := min(win.offset+win.rows, len(s.Notes))
	row := lipgloss.NewStyle().MaxWidth(win.width)

	var b strings.Builder
	for i := win.offset; i < end; i++ {
		n := s.Notes[i]
		line := fmt.Sprintf("%s  %s", strings.ReplaceAll(n.Title, "\n", " "), st.Muted.Render(n.UpdatedAt.Local().Format("2006-01-02 15:04")))
		if n.Summary != nil {
			line += st.Muted.Render("  [summary]")
		}
		if i == win.cursor {
			b.WriteString(row.Render(st.Selected.Render("> " + line)))
		} else {
			b.WriteString(row.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		st.Title.Render(fmt.Sprintf("Your notes (%d-%d of %d)", win.offset+1, end, len(s.Notes))),
		"",
		strings.TrimRight(b.String(), "\n"),
		"",
		st.Panel.Render(detail),
	)
}

// renderDetail shows the summary above the Markdown-rendered content.
func renderDetail(n *model.NoteResponse, st Styles, markdown func(string) string) string {
	if n == nil {
		return ""
	}
	parts := []string{st.Title.Render(n.Title)}
	if n.Summary != nil {
		parts = append(parts, st.Label.Render("AI Summary"), st.Summary.Render(*n.Summary))
	}
	parts = append(parts, "", markdown(n.Content))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderEditor(s *Session, m Model) string {
	heading := "New note"
	if s.Editing != nil {
		heading = "Edit note"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(heading),
		"",
		m.styles.Label.Render("Title"),
		m.title.View(),
		m.styles.Label.Render("Content (Markdown)"),
		m.content.View(),
	)
}

func helpLine(screen Screen, selected *model.NoteResponse) string {
	switch screen {
	case ScreenAuth:
		return "tab: switch field • enter: submit • ctrl+c: quit"
	case ScreenEditor:
		return "tab: switch field • ctrl+s: save • esc: cancel"
	}
	return "↑/↓: select • n: new • e: edit • s: " + strings.ToLower(summarizeLabel(selected)) +
		" • d: delete • r: refresh • L: log out • q: quit"
}

func summarizeLabel(n *model.NoteResponse) string {
	if n != nil && n.Summary != nil {
		return "Resummarize"
	}
	return "Summarize"
}
