package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/cmms-platform/cmms-service/internal/errs"
	"github.com/cmms-platform/cmms-service/internal/model"
	"github.com/cmms-platform/cmms-service/internal/service"
)

// fakeSubmissionService implements service.SubmissionServicer for handler tests.
type fakeSubmissionService struct {
	submission *model.PortalSubmission
	workOrder  *model.WorkOrder
	err        error

	createWorkOrderCalls int
}

func (f *fakeSubmissionService) Submit(ctx context.Context, portal *model.Portal, in service.SubmitInput) (*model.PortalSubmission, error) {
	return f.submission, f.err
}

func (f *fakeSubmissionService) GetByID(ctx context.Context, id uint64) (*model.PortalSubmission, error) {
	return f.submission, f.err
}

func (f *fakeSubmissionService) GetByCode(ctx context.Context, code string) (*model.PortalSubmission, error) {
	return f.submission, f.err
}

func (f *fakeSubmissionService) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]model.PortalSubmission, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return []model.PortalSubmission{*f.submission}, 1, nil
}

func (f *fakeSubmissionService) UpdateStatus(ctx context.Context, id uint64, newStatus model.SubmissionStatus, notes string, reviewerID uint64) (*model.PortalSubmission, error) {
	return f.submission, f.err
}

func (f *fakeSubmissionService) CreateWorkOrder(ctx context.Context, id uint64, requestedBy uint64) (*model.WorkOrder, error) {
	f.createWorkOrderCalls++
	return f.workOrder, f.err
}

func (f *fakeSubmissionService) AddCommunication(ctx context.Context, id uint64, sender model.SenderType, message string, internal bool) (*model.PortalCommunication, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.PortalCommunication{SubmissionID: id, Sender: sender, Message: message, Internal: internal}, nil
}

func setupSubmissionRouter(svc service.SubmissionServicer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSubmissionHandler(svc)
	r := gin.New()
	r.GET("/submissions", h.List)
	r.GET("/submissions/:id", h.Get)
	r.PATCH("/submissions/:id/status", h.UpdateStatus)
	r.POST("/submissions/:id/work-order", h.CreateWorkOrder)
	r.POST("/submissions/:id/communications", h.AddCommunication)
	return r
}

func TestUpdateStatusTerminalConflict(t *testing.T) {
	r := setupSubmissionRouter(&fakeSubmissionService{err: errs.ErrTerminalStatus})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/submissions/7/status",
		strings.NewReader(`{"status":"REVIEWED"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateStatusInvalidTransitionConflict(t *testing.T) {
	r := setupSubmissionRouter(&fakeSubmissionService{err: errs.ErrInvalidTransition})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/submissions/7/status",
		strings.NewReader(`{"status":"COMPLETED"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateStatusSuccess(t *testing.T) {
	sub := &model.PortalSubmission{ID: 7, Code: "PS-11223344", Status: model.SubmissionStatusReviewed}
	r := setupSubmissionRouter(&fakeSubmissionService{submission: sub})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/submissions/7/status",
		strings.NewReader(`{"status":"REVIEWED","notes":"checked"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "PS-11223344")
}

func TestCreateWorkOrderReturnsExisting(t *testing.T) {
	fake := &fakeSubmissionService{workOrder: &model.WorkOrder{ID: 12, Title: "Leak (PS-AA00BB11)"}}
	r := setupSubmissionRouter(fake)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submissions/7/work-order", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"id":12`)
	}
	require.Equal(t, 2, fake.createWorkOrderCalls)
}

func TestCreateWorkOrderRejectedSubmission(t *testing.T) {
	r := setupSubmissionRouter(&fakeSubmissionService{err: errs.ErrWorkOrderRefused})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submissions/7/work-order", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAddCommunicationEmptyMessage(t *testing.T) {
	r := setupSubmissionRouter(&fakeSubmissionService{err: errs.ErrEmptyMessage})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submissions/7/communications",
		strings.NewReader(`{"message":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSubmissionNotFound(t *testing.T) {
	r := setupSubmissionRouter(&fakeSubmissionService{err: errs.ErrSubmissionNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/submissions/999", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
