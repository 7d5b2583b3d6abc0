package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"doc-research-fe/internal/dto"
)

func (c *Client) AskQuestion(ctx context.Context, token, documentId, query string) (string, error) {
	status, body, err := c.postJSON(ctx, "/query", token, dto.QueryRequest{Query: query, DocumentId: documentId})
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", c.unknown("query", status, body)
	}

	var res dto.QueryResponse
	if err := json.Unmarshal(body, &res); err != nil || res.Response == "" {
		return "", c.unknown("query", status, body)
	}
	return res.Response, nil
}

func (c *Client) GenerateReport(ctx context.Context, token, documentId, query string) (string, error) {
	status, body, err := c.postJSON(ctx, "/generate_report", token, dto.QueryRequest{Query: query, DocumentId: documentId})
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", c.unknown("generate report", status, body)
	}

	var res dto.ReportResponse
	if err := json.Unmarshal(body, &res); err != nil || res.Report == "" {
		return "", c.unknown("generate report", status, body)
	}
	return res.Report, nil
}
