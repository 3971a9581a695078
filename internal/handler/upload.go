package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cmms-platform/cmms-service/internal/blob"
)

// UploadHandler is the authenticated attachment gateway: entity-scoped
// uploads for assets, work orders and the rest.
type UploadHandler struct {
	gateway *blob.Gateway
}

func NewUploadHandler(gateway *blob.Gateway) *UploadHandler {
	return &UploadHandler{gateway: gateway}
}

// firstForm returns the first non-empty form value among the names.
func firstForm(c *gin.Context, names ...string) string {
	for _, n := range names {
		if v := c.PostForm(n); v != "" {
			return v
		}
	}
	return ""
}

// Upload accepts multipart files plus entityType/entityId and stores them
// under {entityType}/{entityId}/. Partial failures drop the failed files
// and return the rest.
func (h *UploadHandler) Upload(c *gin.Context) {
	entityType := firstForm(c, "entityType", "entity_type")
	entityID := firstForm(c, "entityId", "entity_id")
	if entityType == "" || entityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entityType and entityId are required"})
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		if single := form.File["file"]; len(single) > 0 {
			headers = single
		}
	}
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files attached"})
		return
	}
	if len(headers) > blob.MaxFilesPerRequest {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("too many files: at most %d per request", blob.MaxFilesPerRequest)})
		return
	}

	inputs := make([]blob.Input, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file: " + fh.Filename})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file: " + fh.Filename})
			return
		}
		inputs = append(inputs, blob.Input{
			OriginalName: fh.Filename,
			Data:         data,
			ContentType:  fh.Header.Get("Content-Type"),
		})
	}

	folder := entityType + "/" + entityID
	if len(inputs) == 1 {
		uploaded, err := h.gateway.Upload(c.Request.Context(), inputs[0], blob.Options{Folder: folder})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"files": []blob.BlobFile{*uploaded}})
		return
	}
	files, err := h.gateway.UploadBatch(c.Request.Context(), inputs, blob.Options{Folder: folder})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"files": files})
}

type deleteBlobRequest struct {
	Pathname string `json:"pathname" binding:"required"`
}

// Delete removes a stored blob. Provider errors are swallowed: the response
// reports whether the object is gone, not why.
func (h *UploadHandler) Delete(c *gin.Context) {
	var req deleteBlobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	deleted := h.gateway.Delete(c.Request.Context(), req.Pathname)
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *UploadHandler) List(c *gin.Context) {
	prefix := c.Query("prefix")
	objects, err := h.gateway.List(c.Request.Context(), prefix)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"objects": objects, "total": len(objects)})
}
