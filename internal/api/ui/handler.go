package ui

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/askdoc-console/internal/console"
	"github.com/liliang-cn/askdoc-console/internal/domain"
	"go.uber.org/zap"
)

// Handler maps each page control to exactly one controller operation
type Handler struct {
	console *console.Console
	logger  *zap.Logger
}

// NewHandler creates a new page handler
func NewHandler(c *console.Console, logger *zap.Logger) *Handler {
	return &Handler{
		console: c,
		logger:  logger.Named("ui"),
	}
}

// RegisterRoutes registers page routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/state", h.GetState)

	documents := r.Group("/documents")
	{
		documents.POST("/refresh", h.RefreshDocuments)
		documents.DELETE("/*filename", h.DeleteDocument)
	}

	r.POST("/upload", h.Upload)
	r.POST("/ask", h.Ask)
}

// AskRequest is the body of a question submission from the page
type AskRequest struct {
	Question string `json:"question"`
}

// DeleteResponse carries the refreshed inventory and the notices to show
type DeleteResponse struct {
	Inventory console.InventoryView `json:"inventory"`
	Notices   []console.Notice      `json:"notices"`
	Cancelled bool                  `json:"cancelled"`
}

// UploadResponse carries the upload status and the inventory it may have refreshed
type UploadResponse struct {
	Upload    console.UploadView    `json:"upload"`
	Inventory console.InventoryView `json:"inventory"`
}

// GetState returns every panel
func (h *Handler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.console.Snapshot())
}

// RefreshDocuments reloads the inventory panel. Backend failures are not
// surfaced: the last rendered inventory is returned.
func (h *Handler) RefreshDocuments(c *gin.Context) {
	view, _ := h.console.Inventory.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, view)
}

// DeleteDocument deletes a document once the page confirms with ?confirm=true
func (h *Handler) DeleteDocument(c *gin.Context) {
	filename := strings.TrimPrefix(c.Param("filename"), "/")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename is required"})
		return
	}

	confirmed := c.Query("confirm") == "true"
	confirm := console.ConfirmFunc(func(context.Context, string) bool { return confirmed })

	notices := []console.Notice{}
	notify := console.NotifyFunc(func(_ context.Context, n console.Notice) {
		notices = append(notices, n)
	})

	view, err := h.console.Inventory.DeleteDocument(c.Request.Context(), filename, confirm, notify)
	c.JSON(http.StatusOK, DeleteResponse{
		Inventory: view,
		Notices:   notices,
		Cancelled: errors.Is(err, domain.ErrCancelled),
	})
}

// Upload submits the multipart field "file". A request without a file is a no-op.
func (h *Handler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	header, err := c.FormFile("file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			h.logger.Warn("unreadable upload form", zap.Error(err))
		}
		view, _ := h.console.Upload.Submit(ctx, nil)
		c.JSON(http.StatusOK, UploadResponse{Upload: view, Inventory: h.console.Inventory.Snapshot()})
		return
	}

	c.JSON(http.StatusOK, h.submitFile(ctx, header))
}

// submitFile uploads header's content. A file that cannot be opened is
// reported as a failed upload in the same response shape.
func (h *Handler) submitFile(ctx context.Context, header *multipart.FileHeader) UploadResponse {
	var view console.UploadView
	file, err := header.Open()
	if err != nil {
		view = h.console.Upload.Reject(header.Filename, err)
	} else {
		defer file.Close()
		view, _ = h.console.Upload.Submit(ctx, &console.Selection{Filename: header.Filename, Content: file})
	}
	return UploadResponse{Upload: view, Inventory: h.console.Inventory.Snapshot()}
}

// Ask submits a question
func (h *Handler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, _ := h.console.QA.Ask(c.Request.Context(), req.Question)
	c.JSON(http.StatusOK, view)
}
