package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cmms-platform/cmms-service/internal/model"
	"github.com/cmms-platform/cmms-service/internal/service"
)

type WorkOrderHandler struct {
	svc *service.WorkOrderService
}

func NewWorkOrderHandler(svc *service.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{svc: svc}
}

type createWorkOrderRequest struct {
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	AssetID       *uint64    `json:"asset_id"`
	LocationID    *uint64    `json:"location_id"`
	AssignedToID  *uint64    `json:"assigned_to_id"`
	RequestedByID *uint64    `json:"requested_by_id"`
	DueDate       *time.Time `json:"due_date"`
}

func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req createWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.Priority != "" && !model.ValidPriority(model.Priority(req.Priority)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority: must be 'low', 'medium', 'high', or 'critical'"})
		return
	}
	w := &model.WorkOrder{
		Title:         req.Title,
		Description:   req.Description,
		Status:        model.WorkOrderStatus(req.Status),
		Priority:      model.Priority(req.Priority),
		AssetID:       req.AssetID,
		LocationID:    req.LocationID,
		AssignedToID:  req.AssignedToID,
		RequestedByID: req.RequestedByID,
		DueDate:       req.DueDate,
	}
	if err := h.svc.Create(c.Request.Context(), w); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *WorkOrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	w, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WorkOrderHandler) List(c *gin.Context) {
	filter := make(map[string]interface{})
	if v := c.Query("status"); v != "" {
		filter["status = ?"] = v
	}
	if v := c.Query("priority"); v != "" {
		filter["priority = ?"] = v
	}
	if v := c.Query("asset_id"); v != "" {
		filter["asset_id = ?"] = v
	}
	if v := c.Query("assigned_to_id"); v != "" {
		filter["assigned_to_id = ?"] = v
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
	c.JSON(http.StatusOK, gin.H{"work_orders": items, "total": total})
}

type updateWorkOrderRequest struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Status       *string    `json:"status,omitempty"`
	Priority     *string    `json:"priority,omitempty"`
	AssetID      *uint64    `json:"asset_id,omitempty"`
	LocationID   *uint64    `json:"location_id,omitempty"`
	AssignedToID *uint64    `json:"assigned_to_id,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
}

func (h *WorkOrderHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	changes := make(map[string]interface{})
	if req.Title != nil {
		changes["title"] = *req.Title
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.Status != nil {
		changes["status"] = *req.Status
	}
	if req.Priority != nil {
		if !model.ValidPriority(model.Priority(*req.Priority)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority: must be 'low', 'medium', 'high', or 'critical'"})
			return
		}
		changes["priority"] = *req.Priority
	}
	if req.AssetID != nil {
		changes["asset_id"] = *req.AssetID
	}
	if req.LocationID != nil {
		changes["location_id"] = *req.LocationID
	}
	if req.AssignedToID != nil {
		changes["assigned_to_id"] = *req.AssignedToID
	}
	if req.DueDate != nil {
		changes["due_date"] = *req.DueDate
	}
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no changes"})
		return
	}
	w, err := h.svc.Update(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WorkOrderHandler) Delete(c *gin.Context) {
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
