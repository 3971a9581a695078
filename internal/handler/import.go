package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cmms-platform/cmms-service/internal/importer"
	"github.com/cmms-platform/cmms-service/internal/model"
)

type assetBulkCreator interface {
	CreateBulk(ctx context.Context, assets []model.Asset) error
}

type partBulkCreator interface {
	CreateBulk(ctx context.Context, parts []model.Part) error
}

// ImportHandler loads entities in bulk from uploaded xlsx workbooks.
type ImportHandler struct {
	assets assetBulkCreator
	parts  partBulkCreator
}

func NewImportHandler(assets assetBulkCreator, parts partBulkCreator) *ImportHandler {
	return &ImportHandler{assets: assets, parts: parts}
}

func (h *ImportHandler) Assets(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer f.Close()

	assets, rowErrs, err := importer.ParseAssets(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.assets.CreateBulk(c.Request.Context(), assets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(assets), "errors": rowErrs})
}

func (h *ImportHandler) Parts(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer f.Close()

	parts, rowErrs, err := importer.ParseParts(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.parts.CreateBulk(c.Request.Context(), parts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(parts), "errors": rowErrs})
}
