package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/cmms-platform/cmms-service/internal/model"
	"github.com/cmms-platform/cmms-service/internal/service"
)

type PortalHandler struct {
	svc           *service.PortalService
	publicBaseURL string
}

func NewPortalHandler(svc *service.PortalService, publicBaseURL string) *PortalHandler {
	return &PortalHandler{svc: svc, publicBaseURL: publicBaseURL}
}

type createPortalRequest struct {
	Name                string              `json:"name" binding:"required"`
	Slug                string              `json:"slug" binding:"required"`
	Type                string              `json:"type" binding:"required"`
	Description         string              `json:"description"`
	AllowAnonymous      bool                `json:"allow_anonymous"`
	RateLimitPerHour    *int                `json:"rate_limit_per_hour,omitempty"`
	RateLimitPerDay     *int                `json:"rate_limit_per_day,omitempty"`
	AutoCreateWorkOrder bool                `json:"auto_create_work_order"`
	DefaultPriority     string              `json:"default_priority"`
	Fields              []model.PortalField `json:"fields"`
	FilePolicy          *model.FilePolicy   `json:"file_policy,omitempty"`
}

func (h *PortalHandler) Create(c *gin.Context) {
	var req createPortalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if !model.ValidPortalType(model.PortalType(req.Type)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid portal type"})
		return
	}
	priority := model.Priority(req.DefaultPriority)
	if req.DefaultPriority == "" {
		priority = model.PriorityMedium
	} else if !model.ValidPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid default_priority"})
		return
	}
	p := &model.Portal{
		Name:                req.Name,
		Slug:                req.Slug,
		Type:                model.PortalType(req.Type),
		Description:         req.Description,
		Active:              true,
		AllowAnonymous:      req.AllowAnonymous,
		AutoCreateWorkOrder: req.AutoCreateWorkOrder,
		DefaultPriority:     priority,
		RateLimitPerHour:    10,
		RateLimitPerDay:     50,
		Fields:              datatypes.NewJSONType(req.Fields),
	}
	if req.RateLimitPerHour != nil {
		p.RateLimitPerHour = *req.RateLimitPerHour
	}
	if req.RateLimitPerDay != nil {
		p.RateLimitPerDay = *req.RateLimitPerDay
	}
	if req.FilePolicy != nil {
		p.FilePolicy = datatypes.NewJSONType(*req.FilePolicy)
	}
	if err := h.svc.Create(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PortalHandler) Get(c *gin.Context) {
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

func (h *PortalHandler) List(c *gin.Context) {
	filter := make(map[string]interface{})
	if v := c.Query("type"); v != "" {
		filter["type = ?"] = v
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
	c.JSON(http.StatusOK, gin.H{"portals": items, "total": total})
}

type updatePortalRequest struct {
	Name                *string              `json:"name,omitempty"`
	Description         *string              `json:"description,omitempty"`
	Active              *bool                `json:"active,omitempty"`
	AllowAnonymous      *bool                `json:"allow_anonymous,omitempty"`
	RateLimitPerHour    *int                 `json:"rate_limit_per_hour,omitempty"`
	RateLimitPerDay     *int                 `json:"rate_limit_per_day,omitempty"`
	AutoCreateWorkOrder *bool                `json:"auto_create_work_order,omitempty"`
	DefaultPriority     *string              `json:"default_priority,omitempty"`
	Fields              *[]model.PortalField `json:"fields,omitempty"`
	FilePolicy          *model.FilePolicy    `json:"file_policy,omitempty"`
}

func (h *PortalHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updatePortalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	changes := make(map[string]interface{})
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.Active != nil {
		changes["active"] = *req.Active
	}
	if req.AllowAnonymous != nil {
		changes["allow_anonymous"] = *req.AllowAnonymous
	}
	if req.RateLimitPerHour != nil {
		changes["rate_limit_per_hour"] = *req.RateLimitPerHour
	}
	if req.RateLimitPerDay != nil {
		changes["rate_limit_per_day"] = *req.RateLimitPerDay
	}
	if req.AutoCreateWorkOrder != nil {
		changes["auto_create_work_order"] = *req.AutoCreateWorkOrder
	}
	if req.DefaultPriority != nil {
		if !model.ValidPriority(model.Priority(*req.DefaultPriority)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid default_priority"})
			return
		}
		changes["default_priority"] = *req.DefaultPriority
	}
	if req.Fields != nil {
		changes["fields"] = datatypes.NewJSONType(*req.Fields)
	}
	if req.FilePolicy != nil {
		changes["file_policy"] = datatypes.NewJSONType(*req.FilePolicy)
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

// Deactivate выключает портал; записи и заявки остаются.
func (h *PortalHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// QRInfo returns what an admin needs to render the portal's QR code: the
// public URL plus the scan counter.
func (h *PortalHandler) QRInfo(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{
		"portal_id":     p.ID,
		"slug":          p.Slug,
		"public_url":    p.PublicURL(h.publicBaseURL),
		"qr_scan_count": p.QRScanCount,
	})
}
