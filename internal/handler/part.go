package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cmms-platform/cmms-service/internal/model"
	"github.com/cmms-platform/cmms-service/internal/service"
)

type PartHandler struct {
	svc *service.PartService
}

func NewPartHandler(svc *service.PartService) *PartHandler {
	return &PartHandler{svc: svc}
}

type createPartRequest struct {
	Name        string  `json:"name" binding:"required"`
	PartNumber  string  `json:"part_number"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	MinQuantity int     `json:"min_quantity"`
	UnitCost    float64 `json:"unit_cost"`
	LocationID  *uint64 `json:"location_id"`
}

func (h *PartHandler) Create(c *gin.Context) {
	var req createPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	p := &model.Part{
		Name:        req.Name,
		PartNumber:  req.PartNumber,
		Description: req.Description,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		UnitCost:    req.UnitCost,
		LocationID:  req.LocationID,
	}
	if err := h.svc.Create(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PartHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PartHandler) List(c *gin.Context) {
	filter := make(map[string]interface{})
	if v := c.Query("part_number"); v != "" {
		filter["part_number = ?"] = v
	}
	if v := c.Query("location_id"); v != "" {
		filter["location_id = ?"] = v
	}
	limit, offset := parseLimitOffset(c)
	items, total, err := h.svc.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parts": items, "total": total})
}

// LowStock lists parts under their reorder threshold for the inventory
// dashboard.
func (h *PartHandler) LowStock(c *gin.Context) {
	items, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parts": items, "total": len(items)})
}

type updatePartRequest struct {
	Name        *string  `json:"name,omitempty"`
	PartNumber  *string  `json:"part_number,omitempty"`
	Description *string  `json:"description,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	MinQuantity *int     `json:"min_quantity,omitempty"`
	UnitCost    *float64 `json:"unit_cost,omitempty"`
	LocationID  *uint64  `json:"location_id,omitempty"`
}

func (h *PartHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	changes := make(map[string]interface{})
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.PartNumber != nil {
		changes["part_number"] = *req.PartNumber
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.Quantity != nil {
		changes["quantity"] = *req.Quantity
	}
	if req.MinQuantity != nil {
		changes["min_quantity"] = *req.MinQuantity
	}
	if req.UnitCost != nil {
		changes["unit_cost"] = *req.UnitCost
	}
	if req.LocationID != nil {
		changes["location_id"] = *req.LocationID
	}
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no changes"})
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type adjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func (h *PartHandler) AdjustStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	p, err := h.svc.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PartHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
