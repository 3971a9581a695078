package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cmms-platform/cmms-service/internal/model"
	"github.com/cmms-platform/cmms-service/internal/service"
)

type LocationHandler struct {
	svc *service.LocationService
}

func NewLocationHandler(svc *service.LocationService) *LocationHandler {
	return &LocationHandler{svc: svc}
}

type createLocationRequest struct {
	Name        string  `json:"name" binding:"required"`
	Address     string  `json:"address"`
	ParentID    *uint64 `json:"parent_id"`
	Description string  `json:"description"`
}

func (h *LocationHandler) Create(c *gin.Context) {
	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	l := &model.Location{
		Name:        req.Name,
		Address:     req.Address,
		ParentID:    req.ParentID,
		Description: req.Description,
	}
	if err := h.svc.Create(c.Request.Context(), l); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *LocationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	l, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *LocationHandler) List(c *gin.Context) {
	filter := make(map[string]interface{})
	if v := c.Query("parent_id"); v != "" {
		filter["parent_id = ?"] = v
	}
	limit, offset := parseLimitOffset(c)
	items, total, err := h.svc.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": items, "total": total})
}

type updateLocationRequest struct {
	Name        *string `json:"name,omitempty"`
	Address     *string `json:"address,omitempty"`
	ParentID    *uint64 `json:"parent_id,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	changes := make(map[string]interface{})
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Address != nil {
		changes["address"] = *req.Address
	}
	if req.ParentID != nil {
		changes["parent_id"] = *req.ParentID
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no changes"})
		return
	}
	l, err := h.svc.Update(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *LocationHandler) Delete(c *gin.Context) {
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
