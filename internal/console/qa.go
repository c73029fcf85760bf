package console

import (
	"context"
	"strings"
	"sync"

	"github.com/liliang-cn/askdoc-console/internal/domain"
	"github.com/liliang-cn/askdoc-console/internal/render"
	"go.uber.org/zap"
)

// QAView is what the question panel currently displays. Output is plain text.
type QAView struct {
	State         QAState    `json:"state"`
	Busy          bool       `json:"busy"`
	SubmitEnabled bool       `json:"submit_enabled"`
	OutputKind    StatusKind `json:"output_kind"`
	Output        string     `json:"output"`
	Prompt        string     `json:"prompt,omitempty"`
}

// QA controls the question panel
type QA struct {
	backend QABackend
	logger  *zap.Logger

	mu     sync.Mutex
	seq    uint64
	state  QAState
	busy   bool
	kind   StatusKind
	output string
	prompt string
}

// NewQA creates the question-answer controller
func NewQA(backend QABackend, logger *zap.Logger) *QA {
	return &QA{
		backend: backend,
		logger:  logger.Named("qa"),
	}
}

// Ask submits question and renders the comparison. Blank questions are
// rejected locally with a prompt and domain.ErrEmptyQuestion.
func (c *QA) Ask(ctx context.Context, question string) (QAView, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		c.mu.Lock()
		c.prompt = render.EmptyQuestionPrompt
		c.mu.Unlock()
		return c.Snapshot(), domain.ErrEmptyQuestion
	}

	err := c.ask(ctx, q)
	return c.Snapshot(), err
}

func (c *QA) ask(ctx context.Context, q string) error {
	seq := c.acquire()
	defer c.release(seq)

	ans, err := c.backend.Ask(ctx, q)
	if err != nil {
		c.logger.Warn("question request failed", zap.Error(err))
		c.finish(seq, QAFailed, StatusError, render.RequestFailed(err))
		return err
	}
	if ans.Failed() {
		c.logger.Info("backend returned error", zap.String("error", ans.Error))
		c.finish(seq, QAFailed, StatusError, render.AnswerError(ans.Error))
		return &domain.ApplicationError{Op: "ask", Message: ans.Error}
	}

	c.logger.Debug("answer rendered", zap.Int("sources", len(ans.Sources)))
	c.finish(seq, QARendered, StatusNone, render.Comparison(ans))
	return nil
}

// acquire disables submission and replaces any previous comparison with the
// in-progress message
func (c *QA) acquire() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.state = QASubmitting
	c.busy = true
	c.kind = StatusInfo
	c.output = render.QuestionInProgress
	c.prompt = ""
	return c.seq
}

func (c *QA) finish(seq uint64, state QAState, kind StatusKind, output string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.Debug("discarding stale answer", zap.Uint64("seq", seq))
		return
	}
	c.state = state
	c.kind = kind
	c.output = output
}

// release re-enables submission on every exit path of ask
func (c *QA) release(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		return
	}
	c.busy = false
	if c.state == QASubmitting {
		c.state = QAFailed
		c.kind = StatusError
		c.output = "Request failed"
	}
}

// Snapshot returns the current view
func (c *QA) Snapshot() QAView {
	c.mu.Lock()
	defer c.mu.Unlock()

	return QAView{
		State:         c.state,
		Busy:          c.busy,
		SubmitEnabled: !c.busy,
		OutputKind:    c.kind,
		Output:        c.output,
		Prompt:        c.prompt,
	}
}
