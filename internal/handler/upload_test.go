package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/cmms-platform/cmms-service/internal/blob"
)

func setupUploadRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUploadHandler(blob.NewGateway(blob.NewMemoryStore(), ""))
	r.POST("/api/v1/upload/blob", h.Upload)
	return r
}

// uploadForm builds a multipart body with the given entity fields and one
// text/plain file part named "file".
func uploadForm(t *testing.T, fields map[string]string, filename string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", "text/plain")
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte("inspection notes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUploadCamelCaseEntityFields(t *testing.T) {
	r := setupUploadRouter(t)

	body, contentType := uploadForm(t, map[string]string{
		"entityType": "assets",
		"entityId":   "42",
	}, "photo.txt")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/blob", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Files []blob.BlobFile `json:"files"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Files, 1)
	require.Equal(t, "photo.txt", resp.Files[0].OriginalName)
	require.True(t, strings.HasPrefix(resp.Files[0].Pathname, "assets/42/"))
}

func TestUploadSnakeCaseFieldsStillAccepted(t *testing.T) {
	r := setupUploadRouter(t)

	body, contentType := uploadForm(t, map[string]string{
		"entity_type": "work-orders",
		"entity_id":   "7",
	}, "report.txt")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/blob", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Files []blob.BlobFile `json:"files"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Files, 1)
	require.True(t, strings.HasPrefix(resp.Files[0].Pathname, "work-orders/7/"))
}

func TestUploadMissingEntityFields(t *testing.T) {
	r := setupUploadRouter(t)

	body, contentType := uploadForm(t, nil, "photo.txt")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/blob", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "entityType and entityId are required")
}
