package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"doc-research-fe/internal/dto"
	"doc-research-fe/internal/gateway"
	"doc-research-fe/internal/pkg/logger"
	"doc-research-fe/internal/session"
	"doc-research-fe/pkg/events"
)

var ErrDocumentNotFound = errors.New("document not found")

type ILibraryService interface {
	// Documents returns the session's document list, fetching it from the
	// backend on first use and caching it for the rest of the session.
	Documents(ctx context.Context, sess *session.Session) ([]dto.Document, error)
	Select(ctx context.Context, sess *session.Session, documentId string) error
}

type libraryService struct {
	backend gateway.Backend
	pubSub  *gochannel.GoChannel
	log     logger.ILogger
}

func NewLibraryService(backend gateway.Backend, pubSub *gochannel.GoChannel, log logger.ILogger) ILibraryService {
	return &libraryService{
		backend: backend,
		pubSub:  pubSub,
		log:     log,
	}
}

func (s *libraryService) Documents(ctx context.Context, sess *session.Session) ([]dto.Document, error) {
	if sess.DocumentsFetched {
		return sess.Documents, nil
	}

	docs, err := s.backend.ListDocuments(ctx, sess.Token)
	if err != nil {
		return nil, err
	}

	sess.Documents = docs
	sess.DocumentsFetched = true
	return docs, nil
}

func (s *libraryService) Select(ctx context.Context, sess *session.Session, documentId string) error {
	docs, err := s.Documents(ctx, sess)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if doc.Id != documentId {
			continue
		}
		sess.SelectDocument(doc)
		s.log.Info("library", "document selected", map[string]interface{}{
			"session_id":  sess.Id,
			"document_id": doc.Id,
			"title":       doc.Title,
		})
		s.publishSelected(sess.Id, doc.Id)
		return nil
	}
	return ErrDocumentNotFound
}

// publishSelected hands the embeddings work to the consumer. Publishing
// is auxiliary: a failure is logged and the Q&A page simply stays in its
// preparing state.
func (s *libraryService) publishSelected(sessionId, documentId string) {
	payload, err := json.Marshal(events.DocumentSelected{
		SessionId:  sessionId,
		DocumentId: documentId,
		OccurredAt: time.Now(),
	})
	if err != nil {
		s.log.Error("library", "failed to encode selection event", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(events.TopicDocumentSelected, msg); err != nil {
		s.log.Error("library", "failed to publish selection event", map[string]interface{}{
			"error":       err.Error(),
			"document_id": documentId,
		})
	}
}
