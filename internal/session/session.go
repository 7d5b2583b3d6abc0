package session

import (
	"github.com/google/uuid"

	"doc-research-fe/internal/dto"
)

// Page identifies which renderer owns the next full view refresh.
type Page string

const (
	PageLogin    Page = "login"
	PageRegister Page = "register"
	PageHome     Page = "home"
	PageQnA      Page = "qna"
)

// View is the outcome of resolving a requested page against the session.
type View int

const (
	ViewLogin View = iota
	ViewRegister
	ViewHome
	ViewQnA
	// ViewForbidden means the combination is invalid and the session must
	// be force-logged-out before landing back on login.
	ViewForbidden
)

// Flash is a one-shot user-facing message consumed by the next render.
type Flash struct {
	Level   string `json:"level"` // "success" | "error" | "warning" | "info"
	Message string `json:"message"`
}

// Session is the whole per-browser state. One instance per active session,
// owned exclusively by it; every mutation happens inside a single request.
type Session struct {
	Id    string `json:"id"`
	Token string `json:"token,omitempty"`
	Page  Page   `json:"page"`

	// Documents is the library listing, fetched once per session.
	Documents []dto.Document `json:"documents,omitempty"`
	// DocumentsFetched distinguishes "not fetched yet" from "empty library".
	DocumentsFetched bool `json:"documents_fetched,omitempty"`

	Selected        *dto.Document     `json:"selected,omitempty"`
	History         []dto.ChatMessage `json:"history,omitempty"`
	Summary         string            `json:"summary,omitempty"`
	EmbeddingsReady bool              `json:"embeddings_ready,omitempty"`

	Flashes []Flash `json:"flashes,omitempty"`
}

func New() *Session {
	return &Session{
		Id:   uuid.NewString(),
		Page: PageLogin,
	}
}

func (s *Session) Authenticated() bool {
	return s.Token != ""
}

// Resolve implements the page-router transition table. It is a pure
// function of the session's auth state, the requested page, and whether a
// document is selected.
func Resolve(authenticated bool, page Page, hasDocument bool) View {
	if !authenticated {
		if page == PageRegister {
			return ViewRegister
		}
		return ViewLogin
	}
	switch page {
	case PageLogin:
		return ViewLogin
	case PageRegister:
		return ViewRegister
	case PageHome:
		return ViewHome
	case PageQnA:
		if hasDocument {
			return ViewQnA
		}
		return ViewForbidden
	default:
		return ViewForbidden
	}
}

// SelectDocument switches the session onto a document. All per-document
// state starts from scratch: summary, readiness flag, and history.
func (s *Session) SelectDocument(doc dto.Document) {
	d := doc
	s.Selected = &d
	s.Summary = ""
	s.EmbeddingsReady = false
	s.History = nil
	s.Page = PageQnA
}

// ResetDocument returns the session to the library, dropping every
// per-document field. The cached document list survives.
func (s *Session) ResetDocument() {
	s.Selected = nil
	s.Summary = ""
	s.EmbeddingsReady = false
	s.History = nil
	s.Page = PageHome
}

// Logout clears the credential and all protected state.
func (s *Session) Logout() {
	s.Token = ""
	s.Documents = nil
	s.DocumentsFetched = false
	s.ResetDocument()
	s.Page = PageLogin
}

func (s *Session) AppendUser(content string) {
	s.History = append(s.History, dto.ChatMessage{Role: dto.RoleUser, Content: content})
}

func (s *Session) AppendAssistant(content string, isReport bool) {
	s.History = append(s.History, dto.ChatMessage{Role: dto.RoleAssistant, Content: content, IsReport: isReport})
}

// NeedsSatisfaction reports whether the newest entry is an assistant
// answer that has not been judged yet.
func (s *Session) NeedsSatisfaction() bool {
	if len(s.History) == 0 {
		return false
	}
	last := s.History[len(s.History)-1]
	return last.Role == dto.RoleAssistant && last.Satisfied == nil
}

// SetSatisfaction judges the newest assistant entry only. Earlier entries
// are never touched. Returns false when there is nothing to judge.
func (s *Session) SetSatisfaction(satisfied bool) bool {
	if !s.NeedsSatisfaction() {
		return false
	}
	s.History[len(s.History)-1].Satisfied = &satisfied
	return true
}

func (s *Session) ClearHistory() {
	s.History = nil
}

// Clone returns an independent deep copy. Stores hand out clones so a
// request never shares memory with the canonical record or with the
// embeddings consumer.
func (s *Session) Clone() *Session {
	c := *s
	c.Documents = append([]dto.Document(nil), s.Documents...)
	if s.Selected != nil {
		d := *s.Selected
		c.Selected = &d
	}
	c.History = append([]dto.ChatMessage(nil), s.History...)
	for i := range c.History {
		if c.History[i].Satisfied != nil {
			v := *c.History[i].Satisfied
			c.History[i].Satisfied = &v
		}
	}
	c.Flashes = append([]Flash(nil), s.Flashes...)
	return &c
}

func (s *Session) AddFlash(level, message string) {
	s.Flashes = append(s.Flashes, Flash{Level: level, Message: message})
}

// PopFlashes hands out the pending flashes and empties the queue.
func (s *Session) PopFlashes() []Flash {
	f := s.Flashes
	s.Flashes = nil
	return f
}
