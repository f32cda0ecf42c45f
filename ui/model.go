// Package ui is the interactive terminal client for the notes API.
package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"notesai/client"
	"notesai/internal/note/model"
	"notesai/pkg/logger"
)

const sessionExpired = "Session expired. Please log in again."

const (
	// header, two spacers, status and footer
	chromeLines = 5
	// list heading and its spacer, spacer above the detail panel, panel border
	listChromeLines = 5
)

// API is the subset of the REST client the UI drives.
type API interface {
	Signup(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ListNotes(ctx context.Context, token string) ([]model.NoteResponse, error)
	CreateNote(ctx context.Context, token, title, content string) (*model.NoteResponse, error)
	UpdateNote(ctx context.Context, token string, id int64, title, content string) (*model.NoteResponse, error)
	DeleteNote(ctx context.Context, token string, id int64) error
	SummarizeNote(ctx context.Context, token string, id int64) (*model.NoteResponse, error)
}

type authDoneMsg struct {
	token string
	err   error
}

type notesLoadedMsg struct {
	notes []model.NoteResponse
	err   error
}

type mutationDoneMsg struct {
	notice string
	err    error
}

type Model struct {
	api      API
	session  *Session
	styles   Styles
	renderer *glamour.TermRenderer

	email     textinput.Model
	password  textinput.Model
	signup    bool
	authFocus int

	title       textinput.Model
	content     textarea.Model
	editorFocus int

	spinner  spinner.Model
	viewport viewport.Model
	cursor   int
	offset   int
	rows     int
	busy     bool
	notice   string
	errMsg   string
	width    int
	height   int
}

func New(api API) Model {
	styles := DefaultStyles()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "│ "
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "│ "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 72
	password.Width = 40

	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = "│ "
	title.CharLimit = 255
	title.Width = 60

	content := textarea.New()
	content.Placeholder = "Write your note in Markdown..."
	content.CharLimit = 0
	content.SetWidth(80)
	content.SetHeight(12)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		logger.Sugar.Warnw("markdown renderer unavailable", "error", err)
	}

	return Model{
		api:      api,
		session:  NewSession(),
		styles:   styles,
		renderer: renderer,
		email:    email,
		password: password,
		title:    title,
		content:  content,
		spinner:  sp,
		viewport: viewport.New(80, 12),
		rows:     1,
		width:    80,
		height:   24,
	}
}

// Run starts the full-screen program and blocks until the user quits.
func Run(api API) error {
	_, err := tea.NewProgram(New(api), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Session() *Session {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case authDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.password.SetValue("")
		m.session.Login(msg.token)
		logger.Sugar.Info("logged in")
		return m, m.showList()

	case notesLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.session.Notes = msg.notes
		if m.cursor >= len(msg.notes) {
			m.cursor = max(len(msg.notes)-1, 0)
		}
		m.layout()
		m.refreshDetail()
		return m, nil

	case mutationDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.notice = msg.notice
		return m, m.showList()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch m.session.Screen {
		case ScreenAuth:
			return m.updateAuth(msg)
		case ScreenList:
			return m.updateList(msg)
		case ScreenEditor:
			return m.updateEditor(msg)
		}
	}
	return m, nil
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.authFocus = 1 - m.authFocus
		m.focusAuth()
		return m, nil
	case "ctrl+t":
		m.signup = !m.signup
		m.errMsg = ""
		return m, nil
	case "enter":
		return m, m.submitAuth()
	}

	var cmd tea.Cmd
	if m.authFocus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) submitAuth() tea.Cmd {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	if email == "" || password == "" {
		m.errMsg = "Please enter both email and password."
		return nil
	}
	m.errMsg = ""
	call := m.api.Login
	if m.signup {
		call = m.api.Signup
	}
	return m.start(func() tea.Msg {
		token, err := call(context.Background(), email, password)
		return authDoneMsg{token: token, err: err}
	})
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	notes := m.session.Notes
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.refreshDetail()
		}
	case "down", "j":
		if m.cursor < len(notes)-1 {
			m.cursor++
			m.refreshDetail()
		}
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case "r":
		m.notice = ""
		return m, m.showList()
	case "n":
		m.openEditor(nil)
	case "e", "enter":
		if n := m.selected(); n != nil {
			m.openEditor(n)
		}
	case "s":
		if n := m.selected(); n != nil {
			return m, m.mutate("Summary updated.", func(ctx context.Context, token string) error {
				_, err := m.api.SummarizeNote(ctx, token, n.ID)
				return err
			})
		}
	case "d":
		if n := m.selected(); n != nil {
			return m, m.mutate("Note deleted.", func(ctx context.Context, token string) error {
				return m.api.DeleteNote(ctx, token, n.ID)
			})
		}
	case "L":
		logger.Sugar.Info("logged out")
		m.logout("")
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.errMsg = ""
		return m, m.showList()
	case "tab", "shift+tab":
		m.editorFocus = 1 - m.editorFocus
		m.focusEditor()
		return m, nil
	case "ctrl+s":
		return m, m.save()
	}

	var cmd tea.Cmd
	if m.editorFocus == 0 {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

func (m *Model) save() tea.Cmd {
	title := m.title.Value()
	content := m.content.Value()
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		m.errMsg = "Title and content cannot be empty."
		return nil
	}
	m.errMsg = ""

	if editing := m.session.Editing; editing != nil {
		id := editing.ID
		return m.mutate("Note updated. Summary cleared if content changed.", func(ctx context.Context, token string) error {
			_, err := m.api.UpdateNote(ctx, token, id, title, content)
			return err
		})
	}
	return m.mutate("Note created.", func(ctx context.Context, token string) error {
		_, err := m.api.CreateNote(ctx, token, title, content)
		return err
	})
}

// showList enters the list screen; every entry refetches.
func (m *Model) showList() tea.Cmd {
	m.session.OpenList()
	token := m.session.Token
	return m.start(func() tea.Msg {
		notes, err := m.api.ListNotes(context.Background(), token)
		return notesLoadedMsg{notes: notes, err: err}
	})
}

func (m *Model) mutate(notice string, call func(ctx context.Context, token string) error) tea.Cmd {
	token := m.session.Token
	return m.start(func() tea.Msg {
		return mutationDoneMsg{notice: notice, err: call(context.Background(), token)}
	})
}

func (m *Model) start(cmd tea.Cmd) tea.Cmd {
	m.busy = true
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) fail(err error) {
	if errors.Is(err, client.ErrUnauthenticated) {
		logger.Sugar.Info("session rejected by server")
		m.logout(sessionExpired)
		return
	}
	logger.Sugar.Warnw("request failed", "error", err)
	m.errMsg = err.Error()
}

func (m *Model) logout(reason string) {
	m.session.Clear()
	m.cursor = 0
	m.offset = 0
	m.notice = ""
	m.errMsg = reason
	m.password.SetValue("")
	m.authFocus = 0
	m.focusAuth()
}

func (m *Model) openEditor(n *model.NoteResponse) {
	m.session.OpenEditor(n)
	m.notice = ""
	m.errMsg = ""
	if n != nil {
		m.title.SetValue(n.Title)
		m.content.SetValue(n.Content)
	} else {
		m.title.SetValue("")
		m.content.SetValue("")
	}
	m.editorFocus = 0
	m.focusEditor()
}

func (m *Model) focusAuth() {
	if m.authFocus == 0 {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.password.Focus()
		m.email.Blur()
	}
}

func (m *Model) focusEditor() {
	if m.editorFocus == 0 {
		m.title.Focus()
		m.content.Blur()
	} else {
		m.content.Focus()
		m.title.Blur()
	}
}

func (m *Model) selected() *model.NoteResponse {
	if m.cursor < 0 || m.cursor >= len(m.session.Notes) {
		return nil
	}
	n := m.session.Notes[m.cursor]
	return &n
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.title.Width = max(width-8, 20)
	m.content.SetWidth(max(width-4, 20))
	m.content.SetHeight(max(height-12, 5))
	m.layout()

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-8, 20)),
	)
	if err == nil {
		m.renderer = renderer
	}
	m.refreshDetail()
}

// layout splits the rows left under the chrome between the note list and
// the detail panel. It runs on resize and whenever the list changes.
func (m *Model) layout() {
	avail := max(m.height-chromeLines-listChromeLines, 2)
	m.rows = min(max(len(m.session.Notes), 1), max(avail/2, 1))
	m.viewport.Width = max(m.width-4, 20)
	m.viewport.Height = max(avail-m.rows, 1)
}

// refreshDetail also scrolls the list window so the cursor stays visible.
func (m *Model) refreshDetail() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.rows {
		m.offset = m.cursor - m.rows + 1
	}
	m.offset = max(min(m.offset, len(m.session.Notes)-m.rows), 0)
	m.viewport.SetContent(renderDetail(m.selected(), m.styles, m.markdown))
	m.viewport.GotoTop()
}

func (m *Model) markdown(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
