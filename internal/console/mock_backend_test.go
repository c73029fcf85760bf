package console

import (
	"context"
	"io"
	"testing"

	"github.com/liliang-cn/askdoc-console/internal/domain"
	"github.com/liliang-cn/askdoc-console/internal/render"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) ListDocuments(ctx context.Context) (*domain.DocumentListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentListResponse), args.Error(1)
}

func (m *MockBackend) DeleteDocument(ctx context.Context, filename string) (*domain.DeleteOutcome, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeleteOutcome), args.Error(1)
}

func (m *MockBackend) UploadDocument(ctx context.Context, filename string, content io.Reader) (*domain.UploadOutcome, error) {
	args := m.Called(ctx, filename, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadOutcome), args.Error(1)
}

func (m *MockBackend) Ask(ctx context.Context, question string) (*domain.AnswerComparison, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnswerComparison), args.Error(1)
}

// recordingNotifier collects notices
type recordingNotifier struct {
	notices []Notice
}

func (r *recordingNotifier) Notify(_ context.Context, n Notice) {
	r.notices = append(r.notices, n)
}

func confirmWith(answer bool, prompts *[]string) Confirmer {
	return ConfirmFunc(func(_ context.Context, prompt string) bool {
		if prompts != nil {
			*prompts = append(*prompts, prompt)
		}
		return answer
	})
}

func newTestConsole(t *testing.T) (*Console, *MockBackend) {
	t.Helper()
	backend := new(MockBackend)
	return New(backend, render.New("en-US"), zap.NewNop()), backend
}

func transportErr(op, msg string) error {
	return &domain.TransportError{Op: op, Err: errString(msg)}
}

type errString string

func (e errString) Error() string { return string(e) }
