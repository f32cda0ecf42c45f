package ui

import "notesai/internal/note/model"

type Screen int

const (
	ScreenAuth Screen = iota
	ScreenList
	ScreenEditor
)

// Session is the client-side state shared by every screen. Editing is nil
// when the editor is creating a new note.
type Session struct {
	LoggedIn bool
	Token    string
	Notes    []model.NoteResponse
	Screen   Screen
	Editing  *model.NoteResponse
}

func NewSession() *Session {
	return &Session{Screen: ScreenAuth}
}

func (s *Session) Login(token string) {
	s.LoggedIn = true
	s.Token = token
	s.Screen = ScreenList
}

// Clear drops everything, including cached notes, and returns to login.
func (s *Session) Clear() {
	*s = Session{Screen: ScreenAuth}
}

func (s *Session) OpenEditor(n *model.NoteResponse) {
	s.Editing = n
	s.Screen = ScreenEditor
}

func (s *Session) OpenList() {
	s.Editing = nil
	s.Screen = ScreenList
}
