package console

import (
	"context"
	"io"

	"github.com/liliang-cn/askdoc-console/internal/domain"
)

// InventoryBackend lists and deletes indexed documents
type InventoryBackend interface {
	ListDocuments(ctx context.Context) (*domain.DocumentListResponse, error)
	DeleteDocument(ctx context.Context, filename string) (*domain.DeleteOutcome, error)
}

// UploadBackend submits documents for indexing
type UploadBackend interface {
	UploadDocument(ctx context.Context, filename string, content io.Reader) (*domain.UploadOutcome, error)
}

// QABackend answers questions
type QABackend interface {
	Ask(ctx context.Context, question string) (*domain.AnswerComparison, error)
}

// Backend is everything the console needs from the question-answering service
type Backend interface {
	InventoryBackend
	UploadBackend
	QABackend
}

// Confirmer asks the user to confirm a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Notice is a one-off message for the user, such as an alert after deletion
type Notice struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message"`
}

// Notifier delivers notices to the user
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NotifyFunc adapts a function to Notifier
type NotifyFunc func(ctx context.Context, n Notice)

func (f NotifyFunc) Notify(ctx context.Context, n Notice) {
	f(ctx, n)
}

// Refresher reloads the inventory after a mutation
type Refresher interface {
	Refresh(ctx context.Context) (InventoryView, error)
}
