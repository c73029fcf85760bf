package console

import (
	"context"
	"io"
	"sync"

	"github.com/liliang-cn/askdoc-console/internal/domain"
	"github.com/liliang-cn/askdoc-console/internal/render"
	"go.uber.org/zap"
)

// Selection is the single file chosen for upload
type Selection struct {
	Filename string
	Content  io.Reader
}

// UploadView is what the upload control currently displays
type UploadView struct {
	State      UploadState `json:"state"`
	Busy       bool        `json:"busy"`
	StatusKind StatusKind  `json:"status_kind"`
	Status     string      `json:"status"`
	StatusHTML string      `json:"status_html"`
	Selection  string      `json:"selection"`
}

// Upload controls the file upload control
type Upload struct {
	backend   UploadBackend
	inventory Refresher
	renderer  *render.Renderer
	logger    *zap.Logger

	mu        sync.Mutex
	seq       uint64
	state     UploadState
	busy      bool
	kind      StatusKind
	status    string
	selection string
}

// NewUpload creates the upload controller. inventory is refreshed after every
// successful upload.
func NewUpload(backend UploadBackend, inventory Refresher, renderer *render.Renderer, logger *zap.Logger) *Upload {
	return &Upload{
		backend:   backend,
		inventory: inventory,
		renderer:  renderer,
		logger:    logger.Named("upload"),
	}
}

// Submit uploads sel. A nil selection is a no-op returning domain.ErrNoSelection.
func (c *Upload) Submit(ctx context.Context, sel *Selection) (UploadView, error) {
	if sel == nil {
		return c.Snapshot(), domain.ErrNoSelection
	}

	succeeded, err := c.submit(ctx, sel)
	if succeeded {
		c.inventory.Refresh(ctx)
	}
	return c.Snapshot(), err
}

func (c *Upload) submit(ctx context.Context, sel *Selection) (bool, error) {
	seq := c.acquire(sel.Filename)
	defer c.release(seq)

	outcome, err := c.backend.UploadDocument(ctx, sel.Filename, sel.Content)
	if err != nil {
		c.logger.Warn("upload request failed", zap.String("filename", sel.Filename), zap.Error(err))
		c.finish(seq, UploadFailed, StatusError, render.UploadFailed(err.Error()), false)
		return false, err
	}
	if !outcome.Success {
		c.logger.Info("backend rejected upload", zap.String("filename", sel.Filename), zap.String("message", outcome.Message))
		c.finish(seq, UploadFailed, StatusError, render.UploadFailed(outcome.Message), false)
		return false, &domain.ApplicationError{Op: "upload document", Message: outcome.Message}
	}

	c.logger.Info("document uploaded",
		zap.String("filename", sel.Filename),
		zap.Int("chunks", outcome.ChunksCount),
		zap.Int("embeddings", outcome.EmbeddingsCount),
	)
	c.finish(seq, UploadSuccess, StatusSuccess, c.renderer.UploadSucceeded(outcome), true)
	return true, nil
}

// Reject records a selection that could not be read as a failed upload
// without contacting the backend. Any upload still in flight is superseded.
func (c *Upload) Reject(filename string, err error) UploadView {
	c.logger.Warn("upload selection unreadable", zap.String("filename", filename), zap.Error(err))

	c.mu.Lock()
	c.seq++
	c.state = UploadFailed
	c.busy = false
	c.kind = StatusError
	c.status = render.UploadFailed(err.Error())
	c.selection = filename
	c.mu.Unlock()

	return c.Snapshot()
}

// acquire marks the control busy and shows the in-progress status
func (c *Upload) acquire(filename string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.state = UploadUploading
	c.busy = true
	c.kind = StatusInfo
	c.status = render.UploadInProgress
	c.selection = filename
	return c.seq
}

func (c *Upload) finish(seq uint64, state UploadState, kind StatusKind, status string, clearSelection bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.Debug("discarding stale upload result", zap.Uint64("seq", seq))
		return
	}
	c.state = state
	c.kind = kind
	c.status = status
	if clearSelection {
		c.selection = ""
	}
}

// release clears the busy indication. It runs on every exit path of submit,
// including a panic while rendering the result.
func (c *Upload) release(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		return
	}
	c.busy = false
	if c.state == UploadUploading {
		c.state = UploadFailed
		c.kind = StatusError
		c.status = render.UploadFailed("")
	}
}

// Snapshot returns the current view
func (c *Upload) Snapshot() UploadView {
	c.mu.Lock()
	defer c.mu.Unlock()

	return UploadView{
		State:      c.state,
		Busy:       c.busy,
		StatusKind: c.kind,
		Status:     c.status,
		StatusHTML: render.StatusMarkup(c.status),
		Selection:  c.selection,
	}
}
