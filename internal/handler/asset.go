package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cmms-platform/cmms-service/internal/model"
	"github.com/cmms-platform/cmms-service/internal/service"
)

type AssetHandler struct {
	svc *service.AssetService
}

func NewAssetHandler(svc *service.AssetService) *AssetHandler {
	return &AssetHandler{svc: svc}
}

type createAssetRequest struct {
	Name           string     `json:"name" binding:"required"`
	Tag            string     `json:"tag"`
	SerialNumber   string     `json:"serial_number"`
	Model          string     `json:"model"`
	Manufacturer   string     `json:"manufacturer"`
	Status         string     `json:"status"`
	LocationID     *uint64    `json:"location_id"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	WarrantyExpiry *time.Time `json:"warranty_expiry"`
	Notes          string     `json:"notes"`
}

func (h *AssetHandler) Create(c *gin.Context) {
	var req createAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	status := req.Status
	if status == "" {
		status = string(model.AssetStatusOperational)
	}
	a := &model.Asset{
		Name:           req.Name,
		Tag:            req.Tag,
		SerialNumber:   req.SerialNumber,
		Model:          req.Model,
		Manufacturer:   req.Manufacturer,
		Status:         model.AssetStatus(status),
		LocationID:     req.LocationID,
		PurchaseDate:   req.PurchaseDate,
		WarrantyExpiry: req.WarrantyExpiry,
		Notes:          req.Notes,
	}
	if err := h.svc.Create(c.Request.Context(), a); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AssetHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	a, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AssetHandler) List(c *gin.Context) {
	filter := make(map[string]interface{})
	if v := c.Query("status"); v != "" {
		filter["status = ?"] = v
	}
	if v := c.Query("location_id"); v != "" {
		filter["location_id = ?"] = v
	}
	if v := c.Query("tag"); v != "" {
		filter["tag = ?"] = v
	}
	limit, offset := parseLimitOffset(c)
	items, total, err := h.svc.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": items, "total": total})
}

type updateAssetRequest struct {
	Name           *string    `json:"name,omitempty"`
	Tag            *string    `json:"tag,omitempty"`
	SerialNumber   *string    `json:"serial_number,omitempty"`
	Model          *string    `json:"model,omitempty"`
	Manufacturer   *string    `json:"manufacturer,omitempty"`
	Status         *string    `json:"status,omitempty"`
	LocationID     *uint64    `json:"location_id,omitempty"`
	PurchaseDate   *time.Time `json:"purchase_date,omitempty"`
	WarrantyExpiry *time.Time `json:"warranty_expiry,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

func (h *AssetHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	changes := make(map[string]interface{})
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Tag != nil {
		changes["tag"] = *req.Tag
	}
	if req.SerialNumber != nil {
		changes["serial_number"] = *req.SerialNumber
	}
	if req.Model != nil {
		changes["model"] = *req.Model
	}
	if req.Manufacturer != nil {
		changes["manufacturer"] = *req.Manufacturer
	}
	if req.Status != nil {
		changes["status"] = *req.Status
	}
	if req.LocationID != nil {
		changes["location_id"] = *req.LocationID
	}
	if req.PurchaseDate != nil {
		changes["purchase_date"] = *req.PurchaseDate
	}
	if req.WarrantyExpiry != nil {
		changes["warranty_expiry"] = *req.WarrantyExpiry
	}
	if req.Notes != nil {
		changes["notes"] = *req.Notes
	}
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no changes"})
		return
	}
	a, err := h.svc.Update(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AssetHandler) Delete(c *gin.Context) {
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
