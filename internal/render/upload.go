package render

import (
	"html/template"
	"strings"

	"github.com/liliang-cn/askdoc-console/internal/domain"
)

// UploadSucceeded renders the success status for an upload: the backend message,
// then the chunk and embedding counts on a second line.
func (r *Renderer) UploadSucceeded(outcome *domain.UploadOutcome) string {
	return outcome.Message + "\n" +
		"Split into " + r.FormatCount(outcome.ChunksCount) +
		" chunks, generated " + r.FormatCount(outcome.EmbeddingsCount) + " embeddings"
}

// UploadFailed renders the failure status. reason is the backend message,
// or the transport error text when the backend supplied none.
func UploadFailed(reason string) string {
	if reason == "" {
		return "Upload failed"
	}
	return "Upload failed: " + reason
}

// StatusMarkup escapes a multi-line status text for insertion as markup
func StatusMarkup(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = template.HTMLEscapeString(line)
	}
	return strings.Join(lines, "<br/>")
}
