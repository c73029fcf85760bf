package console

import (
	"context"
	"sync"

	"github.com/liliang-cn/askdoc-console/internal/domain"
	"github.com/liliang-cn/askdoc-console/internal/render"
	"go.uber.org/zap"
)

// InventoryView is what the inventory panel currently displays
type InventoryView struct {
	State     InventoryState           `json:"state"`
	Documents []domain.DocumentSummary `json:"documents"`
	Markup    string                   `json:"markup"`
	ShowEmpty bool                     `json:"show_empty"`
}

// Inventory controls the document list panel
type Inventory struct {
	backend  InventoryBackend
	renderer *render.Renderer
	logger   *zap.Logger

	mu        sync.Mutex
	seq       uint64
	state     InventoryState
	docs      []domain.DocumentSummary
	markup    string
	showEmpty bool
}

// NewInventory creates the inventory controller
func NewInventory(backend InventoryBackend, renderer *render.Renderer, logger *zap.Logger) *Inventory {
	return &Inventory{
		backend:  backend,
		renderer: renderer,
		logger:   logger.Named("inventory"),
	}
}

// Refresh reloads the inventory. Failures are logged and leave the rendered
// rows as they were.
func (c *Inventory) Refresh(ctx context.Context) (InventoryView, error) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = InventoryLoading
	c.mu.Unlock()

	resp, err := c.backend.ListDocuments(ctx)
	if err != nil {
		c.logger.Warn("failed to load documents", zap.Error(err))
		c.mu.Lock()
		if seq == c.seq {
			c.state = InventoryFailed
		}
		c.mu.Unlock()
		return c.Snapshot(), err
	}

	var (
		docs   []domain.DocumentSummary
		markup string
		state  = InventoryEmpty
	)
	if resp.HasDocuments() {
		docs = resp.Documents
		markup = c.renderer.Inventory(docs)
		state = InventoryPopulated
	}

	c.mu.Lock()
	if seq == c.seq {
		c.state = state
		c.docs = docs
		c.markup = markup
		c.showEmpty = state == InventoryEmpty
	} else {
		c.logger.Debug("discarding stale inventory response", zap.Uint64("seq", seq))
	}
	c.mu.Unlock()

	return c.Snapshot(), nil
}

// DeleteDocument removes a document after the user confirms. Declining is a
// no-op that returns domain.ErrCancelled without touching the backend.
func (c *Inventory) DeleteDocument(ctx context.Context, filename string, confirm Confirmer, notify Notifier) (InventoryView, error) {
	if !confirm.Confirm(ctx, render.DeletePrompt(filename)) {
		return c.Snapshot(), domain.ErrCancelled
	}

	resp, err := c.backend.DeleteDocument(ctx, filename)
	if err != nil {
		c.logger.Warn("delete request failed", zap.String("filename", filename), zap.Error(err))
		notify.Notify(ctx, Notice{Kind: StatusError, Message: render.DeleteFailed(err.Error())})
		return c.Snapshot(), err
	}
	if !resp.Success {
		appErr := &domain.ApplicationError{Op: "delete document", Message: resp.Message}
		c.logger.Info("backend rejected delete", zap.String("filename", filename), zap.String("message", resp.Message))
		notify.Notify(ctx, Notice{Kind: StatusError, Message: render.DeleteFailed(appErr.Error())})
		return c.Snapshot(), appErr
	}

	c.logger.Info("document deleted", zap.String("filename", filename))
	notify.Notify(ctx, Notice{Kind: StatusSuccess, Message: render.DocumentDeleted})

	view, _ := c.Refresh(ctx)
	return view, nil
}

// Snapshot returns a copy of the current view
func (c *Inventory) Snapshot() InventoryView {
	c.mu.Lock()
	defer c.mu.Unlock()

	docs := make([]domain.DocumentSummary, len(c.docs))
	copy(docs, c.docs)

	return InventoryView{
		State:     c.state,
		Documents: docs,
		Markup:    c.markup,
		ShowEmpty: c.showEmpty,
	}
}
