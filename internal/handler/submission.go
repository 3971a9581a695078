package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cmms-platform/cmms-service/internal/auth"
	"github.com/cmms-platform/cmms-service/internal/model"
	"github.com/cmms-platform/cmms-service/internal/service"
)

// SubmissionHandler is the admin-side surface over the submission lifecycle.
// It depends on the interface so tests can swap the service out.
type SubmissionHandler struct {
	svc service.SubmissionServicer
}

func NewSubmissionHandler(svc service.SubmissionServicer) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

func (h *SubmissionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	sub, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubmissionHandler) List(c *gin.Context) {
	filter := make(map[string]interface{})
	if v := c.Query("portal_id"); v != "" {
		filter["portal_id = ?"] = v
	}
	if v := c.Query("status"); v != "" {
		filter["status = ?"] = v
	}
	if v := c.Query("priority"); v != "" {
		filter["priority = ?"] = v
	}
	limit, offset := parseLimitOffset(c)
	items, total, err := h.svc.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": items, "total": total})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

func (h *SubmissionHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	var reviewerID uint64
	if claims := auth.GetClaims(c); claims != nil {
		reviewerID = claims.UserID
	}
	sub, err := h.svc.UpdateStatus(c.Request.Context(), id, model.SubmissionStatus(req.Status), req.Notes, reviewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// CreateWorkOrder converts a submission into a work order. Repeat calls return
// the already linked work order with 200 instead of creating a duplicate.
func (h *SubmissionHandler) CreateWorkOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var requestedBy uint64
	if claims := auth.GetClaims(c); claims != nil {
		requestedBy = claims.UserID
	}
	wo, err := h.svc.CreateWorkOrder(c.Request.Context(), id, requestedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

type addCommunicationRequest struct {
	Message  string `json:"message" binding:"required"`
	Internal bool   `json:"internal"`
}

func (h *SubmissionHandler) AddCommunication(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req addCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	comm, err := h.svc.AddCommunication(c.Request.Context(), id, model.SenderAdmin, req.Message, req.Internal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comm)
}
