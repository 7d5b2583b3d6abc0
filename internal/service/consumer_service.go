package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"doc-research-fe/internal/gateway"
	"doc-research-fe/internal/pkg/logger"
	"doc-research-fe/internal/session"
	"doc-research-fe/pkg/events"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService prepares documents in the background: it reacts to
// selection events by calling the backend's embeddings initialization and
// flipping the session's readiness flag.
type consumerService struct {
	pubSub   *gochannel.GoChannel
	topic    string
	backend  gateway.Backend
	sessions session.Store
	log      logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topic string,
	backend gateway.Backend,
	sessions session.Store,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:   pubSub,
		topic:    topic,
		backend:  backend,
		sessions: sessions,
		log:      log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Every path acks: embeddings initialization is fail-fast, a redelivery
	// loop would violate the single-attempt contract.
	defer msg.Ack()

	var payload events.DocumentSelected
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal selection event", map[string]interface{}{"error": err.Error()})
		return
	}

	sess, found := cs.sessions.Get(payload.SessionId)
	if !found {
		cs.log.Warn("consumer", "session gone before embeddings init", map[string]interface{}{"session_id": payload.SessionId})
		return
	}

	if err := cs.backend.InitializeEmbeddings(ctx, sess.Token, payload.DocumentId); err != nil {
		cs.log.Error("consumer", "embeddings initialization failed", map[string]interface{}{
			"session_id":  payload.SessionId,
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
		return
	}

	// The flip happens atomically at the store: the session may have moved
	// on while the backend worked, and a stale completion for a previously
	// selected document never sets the flag.
	flipped := false
	cs.sessions.Update(payload.SessionId, func(s *session.Session) {
		if s.Selected != nil && s.Selected.Id == payload.DocumentId {
			s.EmbeddingsReady = true
			flipped = true
		}
	})

	if !flipped {
		cs.log.Info("consumer", "stale embeddings completion ignored", map[string]interface{}{
			"session_id":  payload.SessionId,
			"document_id": payload.DocumentId,
		})
		return
	}
	cs.log.Info("consumer", "document ready for q&a", map[string]interface{}{
		"session_id":  payload.SessionId,
		"document_id": payload.DocumentId,
	})
}
