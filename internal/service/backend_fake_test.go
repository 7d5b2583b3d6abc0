package service

import (
	"context"
	"errors"

	"doc-research-fe/internal/dto"
)

// fakeBackend lets tests script each gateway operation and count calls.
type fakeBackend struct {
	authenticateFn func(username, password string) (string, error)
	listFn         func(token string) ([]dto.Document, error)
	summaryFn      func(token, documentId string) (string, error)
	initFn         func(token, documentId string) error
	askFn          func(token, documentId, query string) (string, error)
	reportFn       func(token, documentId, query string) (string, error)
	saveHistoryFn  func(token, documentId string, history []dto.ChatMessage) error
	saveNoteFn     func(token, documentId, note string) error
	fetchNotesFn   func(token, documentId string) ([]string, error)

	calls map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: make(map[string]int)}
}

var errNotScripted = errors.New("operation not scripted")

func (f *fakeBackend) Authenticate(_ context.Context, username, password string) (string, error) {
	f.calls["authenticate"]++
	if f.authenticateFn == nil {
		return "", errNotScripted
	}
	return f.authenticateFn(username, password)
}

func (f *fakeBackend) Register(_ context.Context, username, password string) error {
	f.calls["register"]++
	return nil
}

func (f *fakeBackend) ListDocuments(_ context.Context, token string) ([]dto.Document, error) {
	f.calls["list"]++
	if f.listFn == nil {
		return nil, errNotScripted
	}
	return f.listFn(token)
}

func (f *fakeBackend) GenerateSummary(_ context.Context, token, documentId string) (string, error) {
	f.calls["summary"]++
	if f.summaryFn == nil {
		return "", errNotScripted
	}
	return f.summaryFn(token, documentId)
}

func (f *fakeBackend) InitializeEmbeddings(_ context.Context, token, documentId string) error {
	f.calls["init"]++
	if f.initFn == nil {
		return nil
	}
	return f.initFn(token, documentId)
}

func (f *fakeBackend) AskQuestion(_ context.Context, token, documentId, query string) (string, error) {
	f.calls["ask"]++
	if f.askFn == nil {
		return "", errNotScripted
	}
	return f.askFn(token, documentId, query)
}

func (f *fakeBackend) GenerateReport(_ context.Context, token, documentId, query string) (string, error) {
	f.calls["report"]++
	if f.reportFn == nil {
		return "", errNotScripted
	}
	return f.reportFn(token, documentId, query)
}

func (f *fakeBackend) SaveSessionHistory(_ context.Context, token, documentId string, history []dto.ChatMessage) error {
	f.calls["saveHistory"]++
	if f.saveHistoryFn == nil {
		return nil
	}
	return f.saveHistoryFn(token, documentId, history)
}

func (f *fakeBackend) SaveResearchNote(_ context.Context, token, documentId, note string) error {
	f.calls["saveNote"]++
	if f.saveNoteFn == nil {
		return nil
	}
	return f.saveNoteFn(token, documentId, note)
}

func (f *fakeBackend) FetchResearchNotes(_ context.Context, token, documentId string) ([]string, error) {
	f.calls["fetchNotes"]++
	if f.fetchNotesFn == nil {
		return nil, errNotScripted
	}
	return f.fetchNotesFn(token, documentId)
}
