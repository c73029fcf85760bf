package render

import (
	"strconv"
	"strings"

	"github.com/liliang-cn/askdoc-console/internal/domain"
)

const separator = "----------------------------------------"

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Comparison renders a successful answer as plain text in fixed order: RAG answer,
// baseline answer, sources (or the no-sources notice), timings.
func Comparison(ans *domain.AnswerComparison) string {
	var b strings.Builder

	b.WriteString("RAG answer (with knowledge base):\n")
	b.WriteString(ans.RAGAnswer)
	b.WriteString("\n\n")
	b.WriteString(separator + "\n\n")
	b.WriteString("Baseline answer (without knowledge base):\n")
	b.WriteString(ans.BaselineAnswer)
	b.WriteString("\n\n")
	b.WriteString(separator + "\n\n")

	if len(ans.Sources) > 0 {
		b.WriteString("Sources:\n")
		for i, src := range ans.Sources {
			b.WriteString("\n")
			b.WriteString(strconv.Itoa(i + 1))
			b.WriteString(". ")
			b.WriteString(src.Label())
			b.WriteString("\n   Score: ")
			b.WriteString(strconv.FormatFloat(src.ScoreOrZero(), 'f', 4, 64))
			b.WriteString("\n   Excerpt: ")
			b.WriteString(Excerpt(src.Text))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(NoSourcesNotice)
	}

	var timings domain.Timings
	if ans.Timings != nil {
		timings = *ans.Timings
	}

	b.WriteString("\n\n" + separator + "\n")
	b.WriteString("Timings:\n")
	b.WriteString("   Retrieval: " + FormatMillis(timings.RetrievalMs) + "\n")
	b.WriteString("   RAG inference: " + FormatMillis(timings.RAGInferenceMs) + "\n")
	b.WriteString("   Baseline inference: " + FormatMillis(timings.BaselineInferenceMs))

	return b.String()
}

// Excerpt truncates text to ExcerptLimit characters, turns line breaks into
// spaces and appends an ellipsis marker.
func Excerpt(text string) string {
	runes := []rune(text)
	if len(runes) > ExcerptLimit {
		runes = runes[:ExcerptLimit]
	}
	return lineBreaks.Replace(string(runes)) + "..."
}

// FormatMillis renders a duration in milliseconds, e.g. "5ms" or "12.34ms"
func FormatMillis(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "ms"
}

// AnswerError renders the error field of a failed answer
func AnswerError(msg string) string {
	return "Error: " + msg
}

// RequestFailed renders a transport failure of a question submission
func RequestFailed(err error) string {
	return "Request failed: " + err.Error()
}
