// Package render turns backend responses into the markup and text the console displays.
// Everything backend- or user-supplied that lands in markup goes through
// template.HTMLEscapeString; answer comparisons are plain text and must be inserted
// as text content.
package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Status messages shared by the browser and terminal front ends
const (
	UploadInProgress    = "Uploading and processing document..."
	QuestionInProgress  = "Processing your question..."
	EmptyQuestionPrompt = "Please enter a question."
	NoSourcesNotice     = "No related documents found."
	NoDocuments         = "No documents indexed yet."
	DocumentDeleted     = "Document deleted"
)

// ExcerptLimit is the maximum number of characters shown per source
const ExcerptLimit = 150

// Renderer renders with locale-aware number formatting
type Renderer struct {
	printer *message.Printer
}

// New creates a Renderer for a BCP 47 locale such as "en-US". Unknown or
// malformed locales fall back to English.
func New(locale string) *Renderer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Renderer{printer: message.NewPrinter(tag)}
}

// FormatCount formats n with the locale's thousands separators
func (r *Renderer) FormatCount(n int) string {
	return r.printer.Sprintf("%d", n)
}
