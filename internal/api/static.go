package api

import (
	"embed"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticFS holds the embedded page assets
//
//go:embed static
var StaticFS embed.FS

// SetupStaticRoutes sets up routes for serving the page
func SetupStaticRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		serveStaticFile(c, "index.html")
	})

	r.GET("/static/*filepath", func(c *gin.Context) {
		name := strings.TrimPrefix(c.Param("filepath"), "/")
		if name == "" {
			name = "index.html"
		}
		serveStaticFile(c, name)
	})
}

func serveStaticFile(c *gin.Context, filename string) {
	clean := path.Clean("/" + filename)[1:]
	fullPath := "static/" + clean

	file, err := StaticFS.Open(fullPath)
	if err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to read file")
		return
	}

	contentType := "text/html; charset=utf-8"
	switch path.Ext(clean) {
	case ".js":
		contentType = "application/javascript"
	case ".css":
		contentType = "text/css"
	}

	c.Data(http.StatusOK, contentType, content)
}
