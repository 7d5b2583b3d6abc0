package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-research-fe/internal/dto"
	"doc-research-fe/internal/pkg/logger"
	"doc-research-fe/internal/session"
	"doc-research-fe/pkg/events"
)

func newTestPubSub() *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
}

func TestDocumentsFetchedOncePerSession(t *testing.T) {
	backend := newFakeBackend()
	backend.listFn = func(token string) ([]dto.Document, error) {
		assert.Equal(t, "T1", token)
		return []dto.Document{{Id: "D7", Title: "Paper Seven"}}, nil
	}
	svc := NewLibraryService(backend, newTestPubSub(), logger.NewNopLogger())
	sess := session.New()
	sess.Token = "T1"

	docs, err := svc.Documents(context.Background(), sess)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	_, err = svc.Documents(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.calls["list"])
}

func TestDocumentsFailureIsNotCached(t *testing.T) {
	backend := newFakeBackend()
	calls := 0
	backend.listFn = func(string) ([]dto.Document, error) {
		calls++
		if calls == 1 {
			return nil, errNotScripted
		}
		return []dto.Document{{Id: "D1"}}, nil
	}
	svc := NewLibraryService(backend, newTestPubSub(), logger.NewNopLogger())
	sess := session.New()
	sess.Token = "T1"

	_, err := svc.Documents(context.Background(), sess)
	assert.Error(t, err)
	assert.False(t, sess.DocumentsFetched)

	docs, err := svc.Documents(context.Background(), sess)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestSelectResetsStateAndPublishes(t *testing.T) {
	backend := newFakeBackend()
	backend.listFn = func(string) ([]dto.Document, error) {
		return []dto.Document{{Id: "D7", Title: "Paper Seven"}}, nil
	}
	pubSub := newTestPubSub()
	messages, err := pubSub.Subscribe(context.Background(), events.TopicDocumentSelected)
	require.NoError(t, err)

	svc := NewLibraryService(backend, pubSub, logger.NewNopLogger())
	sess := session.New()
	sess.Token = "T1"
	sess.Summary = "stale"
	sess.EmbeddingsReady = true

	require.NoError(t, svc.Select(context.Background(), sess, "D7"))

	assert.Equal(t, session.PageQnA, sess.Page)
	assert.Equal(t, "D7", sess.Selected.Id)
	assert.Empty(t, sess.Summary)
	assert.False(t, sess.EmbeddingsReady)
	assert.Empty(t, sess.History)

	select {
	case msg := <-messages:
		var payload events.DocumentSelected
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, sess.Id, payload.SessionId)
		assert.Equal(t, "D7", payload.DocumentId)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no selection event published")
	}
}

func TestSelectUnknownDocument(t *testing.T) {
	backend := newFakeBackend()
	backend.listFn = func(string) ([]dto.Document, error) {
		return []dto.Document{{Id: "D1"}}, nil
	}
	svc := NewLibraryService(backend, newTestPubSub(), logger.NewNopLogger())
	sess := session.New()
	sess.Token = "T1"

	err := svc.Select(context.Background(), sess, "D404")

	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.Nil(t, sess.Selected)
}
