package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cmms-platform/cmms-service/internal/tablehier"
)

// TableConfigHandler resolves responsive table layouts for the client.
type TableConfigHandler struct{}

func NewTableConfigHandler() *TableConfigHandler {
	return &TableConfigHandler{}
}

func (h *TableConfigHandler) Entities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entities": tablehier.Entities()})
}

// Get returns the column set for an entity at a breakpoint. Without
// ?breakpoint= the raw configuration comes back.
func (h *TableConfigHandler) Get(c *gin.Context) {
	cfg, ok := tablehier.ConfigFor(c.Param("entity"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown entity"})
		return
	}
	bpRaw := c.Query("breakpoint")
	if bpRaw == "" {
		c.JSON(http.StatusOK, cfg)
		return
	}
	bp := tablehier.Breakpoint(bpRaw)
	if !tablehier.ValidBreakpoint(bp) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid breakpoint"})
		return
	}
	cols := tablehier.Resolve(cfg, bp)
	resp := gin.H{
		"entity":     cfg.Entity,
		"breakpoint": bp,
		"columns":    cols,
	}
	if bp == tablehier.BreakpointMobile {
		resp["card_fields"] = tablehier.MobileCardFields(cfg)
	}
	c.JSON(http.StatusOK, resp)
}
