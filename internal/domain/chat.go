package domain

// AskRequest is the payload of a question submission
type AskRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}

// SourceRef is a retrieved snippet backing the RAG answer
type SourceRef struct {
	ID       string   `json:"id,omitempty"`
	Filename string   `json:"filename,omitempty"`
	Score    *float64 `json:"score,omitempty"`
	Text     string   `json:"text"`
}

// Label returns the identifier shown for the source: id, then filename, then "source"
func (s SourceRef) Label() string {
	if s.ID != "" {
		return s.ID
	}
	if s.Filename != "" {
		return s.Filename
	}
	return "source"
}

// ScoreOrZero returns the similarity score, treating a missing score as 0
func (s SourceRef) ScoreOrZero() float64 {
	if s.Score == nil {
		return 0
	}
	return *s.Score
}

// Timings holds per-stage durations in milliseconds
type Timings struct {
	RetrievalMs         float64 `json:"retrieval_ms"`
	RAGInferenceMs      float64 `json:"llm_rag_ms"`
	BaselineInferenceMs float64 `json:"llm_baseline_ms"`
}

// AnswerComparison is the response to a question: a retrieval-grounded answer next to
// a baseline answer produced without retrieval
type AnswerComparison struct {
	Question       string      `json:"question,omitempty"`
	RAGAnswer      string      `json:"rag_answer"`
	BaselineAnswer string      `json:"baseline_answer"`
	Sources        []SourceRef `json:"sources"`
	Timings        *Timings    `json:"timings"`
	Error          string      `json:"error,omitempty"`
}

// Failed reports whether the backend answered with an error field
func (a *AnswerComparison) Failed() bool {
	return a.Error != ""
}
