package domain

// DocumentSummary is one indexed document as reported by the backend inventory
type DocumentSummary struct {
	Filename      string `json:"filename"`
	Chunks        int    `json:"chunks"`
	ContentLength int    `json:"content_length"`
}

// DocumentListResponse is the response for listing documents
type DocumentListResponse struct {
	Success   bool              `json:"success"`
	Documents []DocumentSummary `json:"documents"`
}

// HasDocuments reports whether the response should render as a populated inventory.
// An absent or false success flag renders as empty.
func (r *DocumentListResponse) HasDocuments() bool {
	return r != nil && r.Success && len(r.Documents) > 0
}

// UploadOutcome is the response to a document upload
type UploadOutcome struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	ChunksCount     int    `json:"chunks_count"`
	EmbeddingsCount int    `json:"embeddings_count"`
}

// DeleteOutcome is the response to a document deletion
type DeleteOutcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthStatus is the backend liveness response
type HealthStatus struct {
	Status string `json:"status"`
}

// OK reports whether the backend declared itself healthy
func (h *HealthStatus) OK() bool {
	return h != nil && h.Status == "ok"
}
