package client

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/liliang-cn/askdoc-console/internal/domain"
)

// Operation names used for logging and metrics labels
const (
	OpListDocuments  = "list_documents"
	OpUploadDocument = "upload_document"
	OpDeleteDocument = "delete_document"
	OpAsk            = "ask"
	OpHealth         = "health"
)

// ListDocuments fetches the inventory
func (c *Client) ListDocuments(ctx context.Context) (*domain.DocumentListResponse, error) {
	var result domain.DocumentListResponse
	if err := c.Do(ctx, OpListDocuments, http.MethodGet, c.paths.Documents, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadDocument submits one file for indexing
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader) (*domain.UploadOutcome, error) {
	body := FileBody{Field: "file", Filename: filename, Content: content}

	var result domain.UploadOutcome
	if err := c.Do(ctx, OpUploadDocument, http.MethodPost, c.paths.Upload, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteDocument removes a document by filename
func (c *Client) DeleteDocument(ctx context.Context, filename string) (*domain.DeleteOutcome, error) {
	path := c.paths.Documents + "/" + url.PathEscape(filename)

	var result domain.DeleteOutcome
	if err := c.Do(ctx, OpDeleteDocument, http.MethodDelete, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ask submits a question and returns the RAG/baseline comparison
func (c *Client) Ask(ctx context.Context, question string) (*domain.AnswerComparison, error) {
	body := JSONBody{Value: domain.AskRequest{Question: question, TopK: c.topK}}

	var result domain.AnswerComparison
	if err := c.Do(ctx, OpAsk, http.MethodPost, c.paths.QA, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health probes the backend liveness endpoint
func (c *Client) Health(ctx context.Context) (*domain.HealthStatus, error) {
	var result domain.HealthStatus
	if err := c.Do(ctx, OpHealth, http.MethodGet, c.paths.Health, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
