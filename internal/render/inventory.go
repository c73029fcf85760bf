package render

import (
	"html/template"
	"strings"

	"github.com/liliang-cn/askdoc-console/internal/domain"
)

// Inventory renders one row per document in backend order
func (r *Renderer) Inventory(docs []domain.DocumentSummary) string {
	var b strings.Builder
	for _, doc := range docs {
		name := template.HTMLEscapeString(doc.Filename)

		b.WriteString(`<div class="doc-item">`)
		b.WriteString(`<div class="doc-info">`)
		b.WriteString(`<div class="doc-name">&#128196; `)
		b.WriteString(name)
		b.WriteString(`</div>`)
		b.WriteString(`<div class="doc-meta">`)
		b.WriteString(r.DocumentMeta(doc))
		b.WriteString(`</div>`)
		b.WriteString(`</div>`)
		b.WriteString(`<div class="doc-actions">`)
		b.WriteString(`<button type="button" class="doc-delete" data-filename="`)
		b.WriteString(name)
		b.WriteString(`">Delete</button>`)
		b.WriteString(`</div>`)
		b.WriteString(`</div>`)
		b.WriteString("\n")
	}
	return b.String()
}

// DocumentMeta is the size line shown under a document name
func (r *Renderer) DocumentMeta(doc domain.DocumentSummary) string {
	return "Chunks: " + r.FormatCount(doc.Chunks) + " | Characters: " + r.FormatCount(doc.ContentLength)
}

// DeletePrompt is the confirmation question shown before deleting a document
func DeletePrompt(filename string) string {
	return `Delete document "` + filename + `"?`
}

// DeleteFailed is the notice shown when a deletion fails
func DeleteFailed(reason string) string {
	return "Delete failed: " + reason
}
