package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cmms-platform/cmms-service/internal/model"
	"github.com/cmms-platform/cmms-service/internal/service"
)

type PMScheduleHandler struct {
	svc *service.PMScheduleService
}

func NewPMScheduleHandler(svc *service.PMScheduleService) *PMScheduleHandler {
	return &PMScheduleHandler{svc: svc}
}

type createPMScheduleRequest struct {
	AssetID         uint64 `json:"asset_id" binding:"required"`
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	IntervalUnit    string `json:"interval_unit" binding:"required"`
	IntervalCount   int    `json:"interval_count"`
	NextDueAt       string `json:"next_due_at" binding:"required"`
	DefaultPriority string `json:"default_priority"`
}

func (h *PMScheduleHandler) Create(c *gin.Context) {
	var req createPMScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	unit := model.IntervalUnit(req.IntervalUnit)
	switch unit {
	case model.IntervalDay, model.IntervalWeek, model.IntervalMonth, model.IntervalYear:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interval_unit"})
		return
	}
	due, err := time.Parse(time.RFC3339, req.NextDueAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "next_due_at must be RFC3339"})
		return
	}
	count := req.IntervalCount
	if count <= 0 {
		count = 1
	}
	priority := model.Priority(req.DefaultPriority)
	if req.DefaultPriority == "" {
		priority = model.PriorityMedium
	} else if !model.ValidPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid default_priority"})
		return
	}
	p := &model.PMSchedule{
		AssetID:         req.AssetID,
		Title:           req.Title,
		Description:     req.Description,
		IntervalUnit:    unit,
		IntervalCount:   count,
		NextDueAt:       due,
		DefaultPriority: priority,
		Active:          true,
	}
	if err := h.svc.Create(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PMScheduleHandler) Get(c *gin.Context) {
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

func (h *PMScheduleHandler) List(c *gin.Context) {
	filter := make(map[string]interface{})
	if v := c.Query("asset_id"); v != "" {
		filter["asset_id = ?"] = v
	}
	if v := c.Query("active"); v != "" {
		filter["active = ?"] = v == "true"
	}
	limit, offset := parseLimitOffset(c)
	items, total, err := h.svc.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pm_schedules": items, "total": total})
}

type updatePMScheduleRequest struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	IntervalUnit    *string `json:"interval_unit,omitempty"`
	IntervalCount   *int    `json:"interval_count,omitempty"`
	NextDueAt       *string `json:"next_due_at,omitempty"`
	DefaultPriority *string `json:"default_priority,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}

func (h *PMScheduleHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updatePMScheduleRequest
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
	if req.IntervalUnit != nil {
		unit := model.IntervalUnit(*req.IntervalUnit)
		switch unit {
		case model.IntervalDay, model.IntervalWeek, model.IntervalMonth, model.IntervalYear:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interval_unit"})
			return
		}
		changes["interval_unit"] = unit
	}
	if req.IntervalCount != nil {
		if *req.IntervalCount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "interval_count must be positive"})
			return
		}
		changes["interval_count"] = *req.IntervalCount
	}
	if req.NextDueAt != nil {
		due, err := time.Parse(time.RFC3339, *req.NextDueAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "next_due_at must be RFC3339"})
			return
		}
		changes["next_due_at"] = due
	}
	if req.DefaultPriority != nil {
		if !model.ValidPriority(model.Priority(*req.DefaultPriority)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid default_priority"})
			return
		}
		changes["default_priority"] = *req.DefaultPriority
	}
	if req.Active != nil {
		changes["active"] = *req.Active
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

func (h *PMScheduleHandler) Delete(c *gin.Context) {
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

type markDoneRequest struct {
	DoneAt string `json:"done_at"`
}

// MarkDone записывает выполнение ТО и двигает next_due_at вперёд по интервалу.
func (h *PMScheduleHandler) MarkDone(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req markDoneRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
	}
	doneAt := time.Now()
	if req.DoneAt != "" {
		t, err := time.Parse(time.RFC3339, req.DoneAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "done_at must be RFC3339"})
			return
		}
		doneAt = t
	}
	p, err := h.svc.MarkDone(c.Request.Context(), id, doneAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PMScheduleHandler) Calendar(c *gin.Context) {
	now := time.Now()
	from := now
	to := now.AddDate(0, 1, 0)
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
			return
		}
		to = t
	}
	if !to.After(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be after from"})
		return
	}
	entries, err := h.svc.Calendar(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": len(entries)})
}
