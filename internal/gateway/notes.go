package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"doc-research-fe/internal/dto"
)

// SaveSessionHistory persists the transcript. Fire-and-forget semantics:
// the caller reports a failure but never retries, and never rolls back
// the local history that triggered the call.
func (c *Client) SaveSessionHistory(ctx context.Context, token, documentId string, history []dto.ChatMessage) error {
	payload := dto.SaveHistoryRequest{DocumentId: documentId, SessionHistory: history}
	status, body, err := c.postJSON(ctx, "/save_session_history", token, payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return c.unknown("save session history", status, body)
	}
	c.log.Info("gateway", "session history saved", map[string]interface{}{"document_id": documentId, "entries": len(history)})
	return nil
}

func (c *Client) SaveResearchNote(ctx context.Context, token, documentId, note string) error {
	payload := dto.SaveNoteRequest{DocumentId: documentId, ResearchNote: note}
	status, body, err := c.postJSON(ctx, "/save_entire_research_note", token, payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return c.unknown("save research note", status, body)
	}
	c.log.Info("gateway", "research note saved", map[string]interface{}{"document_id": documentId})
	return nil
}

func (c *Client) FetchResearchNotes(ctx context.Context, token, documentId string) ([]string, error) {
	query := url.Values{}
	query.Set("document_id", documentId)
	status, body, err := c.get(ctx, "/get_research_notes", token, query)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.unknown("fetch research notes", status, body)
	}

	var res dto.ResearchNotesResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, c.unknown("fetch research notes", status, body)
	}
	return res.ResearchNotes, nil
}
