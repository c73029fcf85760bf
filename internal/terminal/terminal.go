// Package terminal presents the console controllers on a text terminal.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/liliang-cn/askdoc-console/internal/console"
	"github.com/liliang-cn/askdoc-console/internal/render"
)

var (
	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	nameColor    = color.New(color.Bold)
	faintColor   = color.New(color.Faint)
)

// Terminal reads confirmations from in and writes colored output to out.
// It satisfies console.Confirmer and console.Notifier.
type Terminal struct {
	in       *bufio.Reader
	out      io.Writer
	renderer *render.Renderer
}

// New creates a Terminal
func New(in io.Reader, out io.Writer, renderer *render.Renderer) *Terminal {
	return &Terminal{
		in:       bufio.NewReader(in),
		out:      out,
		renderer: renderer,
	}
}

// Confirm asks prompt and accepts "y" or "yes". Anything else, including EOF, declines.
func (t *Terminal) Confirm(_ context.Context, prompt string) bool {
	fmt.Fprintf(t.out, "%s [y/N]: ", prompt)

	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(t.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// Notify prints a notice
func (t *Terminal) Notify(_ context.Context, n console.Notice) {
	t.Status(n.Kind, n.Message)
}

// Status prints text in the color of kind
func (t *Terminal) Status(kind console.StatusKind, text string) {
	if text == "" {
		return
	}
	switch kind {
	case console.StatusInfo:
		infoColor.Fprintln(t.out, text)
	case console.StatusSuccess:
		successColor.Fprintln(t.out, text)
	case console.StatusError:
		errorColor.Fprintln(t.out, text)
	default:
		fmt.Fprintln(t.out, text)
	}
}

// Inventory lists the documents of view, or the empty message
func (t *Terminal) Inventory(view console.InventoryView) {
	if view.ShowEmpty {
		faintColor.Fprintln(t.out, render.NoDocuments)
		return
	}
	for _, doc := range view.Documents {
		nameColor.Fprintln(t.out, doc.Filename)
		fmt.Fprintf(t.out, "  %s\n", t.renderer.DocumentMeta(doc))
	}
}

// Upload prints the upload status
func (t *Terminal) Upload(view console.UploadView) {
	t.Status(view.StatusKind, view.Status)
}

// Answer prints the question panel: the prompt for a rejected question,
// otherwise the rendered output
func (t *Terminal) Answer(view console.QAView) {
	if view.Prompt != "" {
		errorColor.Fprintln(t.out, view.Prompt)
		return
	}
	t.Status(view.OutputKind, view.Output)
}
