package handler

import (
	"errors"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/response"
	"github.com/noah-isme/portfolio-api/pkg/storage"
)

type signedFileOpener interface {
	Open(path, token string) (*os.File, error)
}

// FileHandler serves attachments stored by the local blob backend.
type FileHandler struct {
	files signedFileOpener
}

// NewFileHandler constructs the handler.
func NewFileHandler(files signedFileOpener) *FileHandler {
	return &FileHandler{files: files}
}

// Serve godoc
// @Summary Download a locally stored attachment
// @Tags Files
// @Produce octet-stream
// @Param path path string true "Object path"
// @Param token query string true "Signed token"
// @Success 200 {file} binary
// @Router /files/{path} [get]
func (h *FileHandler) Serve(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	token := c.Query("token")
	if path == "" || token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "file not found"))
		return
	}
	file, err := h.files.Open(path, token)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "file not found"))
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid file token"))
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Internal(err, "failed to read file"))
		return
	}
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		c.Header("Content-Type", ct)
	}
	c.Header("Cache-Control", "private, max-age=3600")
	c.DataFromReader(200, info.Size(), c.Writer.Header().Get("Content-Type"), file, nil)
}
