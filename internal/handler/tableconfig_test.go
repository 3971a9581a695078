package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setupTableConfigRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTableConfigHandler()
	r := gin.New()
	r.GET("/table-config", h.Entities)
	r.GET("/table-config/:entity", h.Get)
	return r
}

func TestTableConfigUnknownEntity(t *testing.T) {
	r := setupTableConfigRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/table-config/unicorns", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTableConfigInvalidBreakpoint(t *testing.T) {
	r := setupTableConfigRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/table-config/assets?breakpoint=watch", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTableConfigMobileIncludesCardFields(t *testing.T) {
	r := setupTableConfigRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/table-config/assets?breakpoint=mobile", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Entity     string `json:"entity"`
		Breakpoint string `json:"breakpoint"`
		Columns    []struct {
			Key string `json:"key"`
		} `json:"columns"`
		CardFields []string `json:"card_fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "assets", resp.Entity)
	require.Equal(t, "mobile", resp.Breakpoint)
	require.NotEmpty(t, resp.Columns)
	require.NotEmpty(t, resp.CardFields)
}

func TestTableConfigDesktopHasMoreColumnsThanMobile(t *testing.T) {
	r := setupTableConfigRouter()

	count := func(bp string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/table-config/assets?breakpoint="+bp, nil))
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Columns []json.RawMessage `json:"columns"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return len(resp.Columns)
	}
	require.Greater(t, count("desktop"), count("mobile"))
}

func TestTableConfigEntitiesList(t *testing.T) {
	r := setupTableConfigRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/table-config", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "work-orders")
}
