package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-research-fe/internal/dto"
	"doc-research-fe/internal/pkg/logger"
	"doc-research-fe/internal/session"
	"doc-research-fe/pkg/events"
)

func selectionMessage(t *testing.T, sessionId, documentId string) *message.Message {
	t.Helper()
	payload, err := json.Marshal(events.DocumentSelected{
		SessionId:  sessionId,
		DocumentId: documentId,
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func newTestConsumer(backend *fakeBackend, store session.Store) *consumerService {
	return &consumerService{
		topic:    events.TopicDocumentSelected,
		backend:  backend,
		sessions: store,
		log:      logger.NewNopLogger(),
	}
}

func TestConsumerFlipsReadinessFlag(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)
	sess := session.New()
	sess.Token = "T1"
	sess.SelectDocument(dto.Document{Id: "D7"})
	store.Save(sess)

	backend := newFakeBackend()
	backend.initFn = func(token, documentId string) error {
		assert.Equal(t, "T1", token)
		assert.Equal(t, "D7", documentId)
		return nil
	}

	cs := newTestConsumer(backend, store)
	cs.processMessage(context.Background(), selectionMessage(t, sess.Id, "D7"))

	got, found := store.Get(sess.Id)
	require.True(t, found)
	assert.True(t, got.EmbeddingsReady)
}

func TestConsumerIgnoresStaleCompletion(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)
	sess := session.New()
	sess.Token = "T1"
	// The user has already switched to another document by the time the
	// init for the first one completes.
	sess.SelectDocument(dto.Document{Id: "D8"})
	store.Save(sess)

	cs := newTestConsumer(newFakeBackend(), store)
	cs.processMessage(context.Background(), selectionMessage(t, sess.Id, "D7"))

	got, _ := store.Get(sess.Id)
	assert.False(t, got.EmbeddingsReady)
}

func TestConsumerFailureLeavesFlagDown(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)
	sess := session.New()
	sess.Token = "T1"
	sess.SelectDocument(dto.Document{Id: "D7"})
	store.Save(sess)

	backend := newFakeBackend()
	backend.initFn = func(string, string) error { return errors.New("init failed") }

	cs := newTestConsumer(backend, store)
	cs.processMessage(context.Background(), selectionMessage(t, sess.Id, "D7"))

	got, _ := store.Get(sess.Id)
	assert.False(t, got.EmbeddingsReady)
	// Single attempt, no retry.
	assert.Equal(t, 1, backend.calls["init"])
}

func TestConsumerCompletionConcurrentWithPolling(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)
	sess := session.New()
	sess.Token = "T1"
	sess.SelectDocument(dto.Document{Id: "D7"})
	store.Save(sess)

	cs := newTestConsumer(newFakeBackend(), store)

	done := make(chan struct{})
	go func() {
		defer close(done)
		cs.processMessage(context.Background(), selectionMessage(t, sess.Id, "D7"))
	}()

	// A browser refreshing the Q&A page reads the flag while the consumer
	// completes; both sides go through the store, never a shared pointer.
	deadline := time.After(2 * time.Second)
	for {
		if got, _ := store.Get(sess.Id); got != nil && got.EmbeddingsReady {
			break
		}
		select {
		case <-deadline:
			t.Fatal("readiness flag never became visible")
		case <-time.After(5 * time.Millisecond):
		}
	}
	<-done
}

func TestConsumerUnknownSession(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)
	backend := newFakeBackend()

	cs := newTestConsumer(backend, store)
	cs.processMessage(context.Background(), selectionMessage(t, "gone", "D7"))

	assert.Zero(t, backend.calls["init"])
}
