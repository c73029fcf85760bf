// Package console holds the three independent controllers behind the document
// question-answering page. Each controller owns its state and changes it only
// through its own operations; they share nothing but the backend client.
//
// A new submission on a controller while an earlier one is still in flight is
// not rejected. Each submission takes a sequence number and only the latest
// one may update the view, so a slow stale response can no longer overwrite a
// newer one.
package console

import (
	"context"

	"github.com/liliang-cn/askdoc-console/internal/render"
	"go.uber.org/zap"
)

// View is a snapshot of every panel
type View struct {
	Inventory InventoryView `json:"inventory"`
	Upload    UploadView    `json:"upload"`
	QA        QAView        `json:"qa"`
}

// Console wires the controllers to one backend
type Console struct {
	Inventory *Inventory
	Upload    *Upload
	QA        *QA
}

// New creates the controllers for backend
func New(backend Backend, renderer *render.Renderer, logger *zap.Logger) *Console {
	inventory := NewInventory(backend, renderer, logger)
	return &Console{
		Inventory: inventory,
		Upload:    NewUpload(backend, inventory, renderer, logger),
		QA:        NewQA(backend, logger),
	}
}

// Activate runs the page-activation refresh of the inventory
func (c *Console) Activate(ctx context.Context) InventoryView {
	view, _ := c.Inventory.Refresh(ctx)
	return view
}

// Snapshot returns the current state of all panels
func (c *Console) Snapshot() View {
	return View{
		Inventory: c.Inventory.Snapshot(),
		Upload:    c.Upload.Snapshot(),
		QA:        c.QA.Snapshot(),
	}
}
