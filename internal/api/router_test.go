package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/askdoc-console/internal/api/ui"
	"github.com/liliang-cn/askdoc-console/internal/client"
	"github.com/liliang-cn/askdoc-console/internal/console"
	"github.com/liliang-cn/askdoc-console/internal/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBackend mimics the question-answering service
type fakeBackend struct {
	mu        sync.Mutex
	documents []map[string]any
	calls     map[string]int
	deleted   []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		documents: []map[string]any{
			{"filename": "a/b.txt", "chunks": 2, "content_length": 1500},
			{"filename": "<i>notes</i>.md", "chunks": 1, "content_length": 20},
		},
		calls: map[string]int{},
	}
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	if strings.HasPrefix(r.URL.Path, "/documents/") {
		key = r.Method + " /documents/{filename}"
	}
	f.calls[key]++

	w.Header().Set("Content-Type", "application/json")
	switch key {
	case "GET /health":
		json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	case "GET /documents":
		json.NewEncoder(w).Encode(map[string]any{"success": true, "documents": f.documents})
	case "DELETE /documents/{filename}":
		name := strings.TrimPrefix(r.URL.Path, "/documents/")
		f.deleted = append(f.deleted, name)
		kept := f.documents[:0]
		for _, d := range f.documents {
			if d["filename"] != name {
				kept = append(kept, d)
			}
		}
		f.documents = kept
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "deleted"})
	case "POST /upload-doc":
		_, header, err := r.FormFile("file")
		if err != nil {
			json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "no file"})
			return
		}
		f.documents = append(f.documents, map[string]any{"filename": header.Filename, "chunks": 1, "content_length": 5})
		json.NewEncoder(w).Encode(map[string]any{
			"success": true, "message": "Indexed " + header.Filename, "chunks_count": 1, "embeddings_count": 1,
		})
	case "POST /qa":
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(map[string]any{
			"question":        req["question"],
			"rag_answer":      "A",
			"baseline_answer": "B",
			"sources":         []any{},
			"timings":         map[string]any{"retrieval_ms": 5, "llm_rag_ms": 10, "llm_baseline_ms": 8},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeBackend) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func setupRouter(t *testing.T) (*gin.Engine, *fakeBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := newFakeBackend()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	reg := prometheus.NewRegistry()
	backend := client.New(client.Options{BaseURL: server.URL, Metrics: client.NewMetrics(reg)})
	c := console.New(backend, render.New("en-US"), zap.NewNop())

	return SetupRouter(c, backend, RouterConfig{
		Metrics: reg,
	}), fake
}

func perform(r http.Handler, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t)

	w := perform(r, http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "ok", body["backend"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestStaticPage(t *testing.T) {
	r, _ := setupRouter(t)

	w := perform(r, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="docsList"`)

	w = perform(r, http.MethodGet, "/static/app.js", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/javascript", w.Header().Get("Content-Type"))

	w = perform(r, http.MethodGet, "/static/../../go.mod", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRefreshDocuments(t *testing.T) {
	r, fake := setupRouter(t)

	w := perform(r, http.MethodPost, "/ui/documents/refresh", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	view := decode[map[string]any](t, w)
	assert.Equal(t, "populated", view["state"])
	markup := view["markup"].(string)
	assert.Equal(t, 2, strings.Count(markup, `class="doc-item"`))
	assert.Contains(t, markup, "&lt;i&gt;notes&lt;/i&gt;.md")
	assert.NotContains(t, markup, "<i>")
	assert.Contains(t, markup, "Characters: 1,500")
	assert.Equal(t, 1, fake.count("GET /documents"))
}

func TestDeleteDocument_RequiresConfirmation(t *testing.T) {
	r, fake := setupRouter(t)

	w := perform(r, http.MethodDelete, "/ui/documents/a%2Fb.txt", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[ui.DeleteResponse](t, w)
	assert.True(t, resp.Cancelled)
	assert.Empty(t, resp.Notices)
	assert.Equal(t, 0, fake.count("DELETE /documents/{filename}"))
}

func TestDeleteDocument_Confirmed(t *testing.T) {
	r, fake := setupRouter(t)

	w := perform(r, http.MethodDelete, "/ui/documents/a%2Fb.txt?confirm=true", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[ui.DeleteResponse](t, w)
	assert.False(t, resp.Cancelled)
	require.Len(t, resp.Notices, 1)
	assert.Equal(t, "Document deleted", resp.Notices[0].Message)
	require.Len(t, resp.Inventory.Documents, 1)
	assert.Equal(t, "<i>notes</i>.md", resp.Inventory.Documents[0].Filename)
	assert.Equal(t, []string{"a/b.txt"}, fake.deleted)
}

func TestUpload(t *testing.T) {
	r, fake := setupRouter(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "new.txt")
	require.NoError(t, err)
	part.Write([]byte("fresh content"))
	require.NoError(t, writer.Close())

	w := perform(r, http.MethodPost, "/ui/upload", body, writer.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[ui.UploadResponse](t, w)
	assert.Equal(t, console.UploadSuccess, resp.Upload.State)
	assert.False(t, resp.Upload.Busy)
	assert.Contains(t, resp.Upload.StatusHTML, "Indexed new.txt<br/>Split into 1 chunks")
	assert.Len(t, resp.Inventory.Documents, 3)
	assert.Equal(t, 1, fake.count("GET /documents"))
}

func TestUpload_WithoutFileIsNoOp(t *testing.T) {
	r, fake := setupRouter(t)

	w := perform(r, http.MethodPost, "/ui/upload", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[ui.UploadResponse](t, w)
	assert.Equal(t, console.UploadIdle, resp.Upload.State)
	assert.Equal(t, 0, fake.count("POST /upload-doc"))
}

func TestAsk(t *testing.T) {
	r, fake := setupRouter(t)

	w := perform(r, http.MethodPost, "/ui/ask", strings.NewReader(`{"question":"what is this?"}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	view := decode[console.QAView](t, w)
	assert.Equal(t, console.QARendered, view.State)
	assert.True(t, view.SubmitEnabled)
	assert.Contains(t, view.Output, "No related documents found.")
	assert.Equal(t, 1, fake.count("POST /qa"))
}

func TestAsk_BlankQuestionMakesNoCall(t *testing.T) {
	r, fake := setupRouter(t)

	w := perform(r, http.MethodPost, "/ui/ask", strings.NewReader(`{"question":"   "}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	view := decode[console.QAView](t, w)
	assert.Equal(t, "Please enter a question.", view.Prompt)
	assert.Equal(t, 0, fake.count("POST /qa"))
}

func TestAsk_MalformedBody(t *testing.T) {
	r, _ := setupRouter(t)

	w := perform(r, http.MethodPost, "/ui/ask", strings.NewReader(`{"question":`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestState(t *testing.T) {
	r, _ := setupRouter(t)

	w := perform(r, http.MethodGet, "/ui/state", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	view := decode[map[string]map[string]any](t, w)
	assert.Equal(t, "idle", view["inventory"]["state"])
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	perform(r, http.MethodPost, "/ui/documents/refresh", nil, "")
	w := perform(r, http.MethodGet, "/metrics", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `askdoc_console_backend_requests_total{operation="list_documents",outcome="ok"} 1`)
}

func TestCrossOriginDeleteRefused(t *testing.T) {
	r, fake := setupRouter(t)

	preflight := httptest.NewRequest(http.MethodOptions, "/ui/documents/a%2Fb.txt?confirm=true", nil)
	preflight.Header.Set("Origin", "https://evil.example")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, preflight)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	del := httptest.NewRequest(http.MethodDelete, "/ui/documents/a%2Fb.txt?confirm=true", nil)
	del.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, del)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, fake.count("DELETE /documents/{filename}"))
	assert.Empty(t, fake.deleted)
}

func TestSameOriginDeleteAllowed(t *testing.T) {
	r, fake := setupRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/ui/documents/a%2Fb.txt?confirm=true", nil)
	req.Header.Set("Origin", "http://"+req.Host)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fake.count("DELETE /documents/{filename}"))
}
