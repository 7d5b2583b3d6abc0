package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"doc-research-fe/internal/dto"
)

func (c *Client) ListDocuments(ctx context.Context, token string) ([]dto.Document, error) {
	status, body, err := c.get(ctx, "/list_documents_info", token, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.unknown("list documents", status, body)
	}

	var docs []dto.Document
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, c.unknown("list documents", status, body)
	}
	c.log.Info("gateway", "fetched document list", map[string]interface{}{"count": len(docs)})
	return docs, nil
}

func (c *Client) GenerateSummary(ctx context.Context, token, documentId string) (string, error) {
	status, body, err := c.postJSON(ctx, "/generate_summary", token, dto.SummaryRequest{DocumentId: documentId})
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", c.unknown("generate summary", status, body)
	}

	var res dto.SummaryResponse
	if err := json.Unmarshal(body, &res); err != nil || res.Summary == "" {
		return "", c.unknown("generate summary", status, body)
	}
	c.log.Info("gateway", "summary generated", map[string]interface{}{"document_id": documentId})
	return res.Summary, nil
}

func (c *Client) InitializeEmbeddings(ctx context.Context, token, documentId string) error {
	status, body, err := c.postJSON(ctx, "/initialize_embeddings", token, dto.InitializeEmbeddingsRequest{DocumentId: documentId})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return c.unknown("initialize embeddings", status, body)
	}
	c.log.Info("gateway", "embeddings initialized", map[string]interface{}{"document_id": documentId})
	return nil
}
