package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"doc-research-fe/internal/dto"
	"doc-research-fe/internal/gateway"
	"doc-research-fe/internal/pkg/logger"
	"doc-research-fe/internal/session"
)

var (
	// ErrNotReady means embeddings are still being prepared for the
	// selected document; questions are refused until the flag flips.
	ErrNotReady = errors.New("document is still being prepared")
	// ErrEmptyHistory rejects saving a research note with nothing in it.
	ErrEmptyHistory = errors.New("no q&a history to save")
)

// Fallback texts shown in place of a backend answer. These land in the
// history like a normal assistant entry; nothing is rolled back.
const (
	summaryFailedText = "Summary generation failed."
	answerFailedText  = "Error with question."
	reportFailedText  = "Error generating report."
)

type IQnAService interface {
	// Summary returns the cached summary, generating it on first use.
	// Failures cache a fallback text, exactly like a real summary.
	Summary(ctx context.Context, sess *session.Session) string
	RegenerateSummary(sess *session.Session)
	Ask(ctx context.Context, sess *session.Session, form *dto.AskForm) error
	Satisfaction(sess *session.Session, satisfied bool) bool
	Clear(sess *session.Session)
	// Leave saves the transcript and resets all per-document state. The
	// reset happens even when the save fails.
	Leave(ctx context.Context, sess *session.Session) error
	SaveNote(ctx context.Context, sess *session.Session) error
	Notes(ctx context.Context, sess *session.Session) ([]string, error)
}

type qnaService struct {
	backend  gateway.Backend
	validate *validator.Validate
	log      logger.ILogger
}

func NewQnAService(backend gateway.Backend, log logger.ILogger) IQnAService {
	return &qnaService{
		backend:  backend,
		validate: validator.New(),
		log:      log,
	}
}

func (s *qnaService) Summary(ctx context.Context, sess *session.Session) string {
	if sess.Selected == nil {
		return ""
	}
	if sess.Summary != "" {
		return sess.Summary
	}

	summary, err := s.backend.GenerateSummary(ctx, sess.Token, sess.Selected.Id)
	if err != nil {
		s.log.Warn("qna", "summary generation failed", map[string]interface{}{
			"document_id": sess.Selected.Id,
			"error":       err.Error(),
		})
		summary = summaryFailedText
	}
	sess.Summary = summary
	return summary
}

func (s *qnaService) RegenerateSummary(sess *session.Session) {
	sess.Summary = ""
}

func (s *qnaService) Ask(ctx context.Context, sess *session.Session, form *dto.AskForm) error {
	if err := s.validate.Struct(form); err != nil {
		return ErrValidation
	}
	if sess.Selected == nil {
		return ErrDocumentNotFound
	}
	if !sess.EmbeddingsReady {
		return ErrNotReady
	}

	sess.AppendUser(form.Question)

	var (
		answer string
		err    error
	)
	if form.Report {
		answer, err = s.backend.GenerateReport(ctx, sess.Token, sess.Selected.Id, form.Question)
		if err != nil {
			answer = reportFailedText
		}
	} else {
		answer, err = s.backend.AskQuestion(ctx, sess.Token, sess.Selected.Id, form.Question)
		if err != nil {
			answer = answerFailedText
		}
	}
	sess.AppendAssistant(answer, form.Report)

	if err != nil {
		s.log.Warn("qna", "question failed", map[string]interface{}{
			"document_id": sess.Selected.Id,
			"error":       err.Error(),
		})
	}
	return err
}

func (s *qnaService) Satisfaction(sess *session.Session, satisfied bool) bool {
	return sess.SetSatisfaction(satisfied)
}

func (s *qnaService) Clear(sess *session.Session) {
	sess.ClearHistory()
}

func (s *qnaService) Leave(ctx context.Context, sess *session.Session) error {
	var err error
	if sess.Selected != nil {
		err = s.backend.SaveSessionHistory(ctx, sess.Token, sess.Selected.Id, sess.History)
	}
	sess.ResetDocument()
	return err
}

func (s *qnaService) SaveNote(ctx context.Context, sess *session.Session) error {
	if sess.Selected == nil {
		return ErrDocumentNotFound
	}
	if len(sess.History) == 0 {
		return ErrEmptyHistory
	}
	note := FormatResearchNote(sess.History)
	return s.backend.SaveResearchNote(ctx, sess.Token, sess.Selected.Id, note)
}

func (s *qnaService) Notes(ctx context.Context, sess *session.Session) ([]string, error) {
	if sess.Selected == nil {
		return nil, ErrDocumentNotFound
	}
	return s.backend.FetchResearchNotes(ctx, sess.Token, sess.Selected.Id)
}

// FormatResearchNote renders the transcript as a single markdown note,
// the shape the backend stores verbatim.
func FormatResearchNote(history []dto.ChatMessage) string {
	var b strings.Builder
	b.WriteString("## Research Notes\n\n")
	for _, msg := range history {
		switch msg.Role {
		case dto.RoleUser:
			b.WriteString("**User:** " + msg.Content + "\n\n")
		case dto.RoleAssistant:
			b.WriteString("**Assistant:** " + msg.Content + "\n\n")
		}
	}
	return b.String()
}
