package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cmms-platform/cmms-service/internal/model"
)

type fakeAssetCreator struct {
	calls   int
	batches [][]model.Asset
}

func (f *fakeAssetCreator) CreateBulk(ctx context.Context, assets []model.Asset) error {
	f.calls++
	f.batches = append(f.batches, assets)
	return nil
}

type fakePartCreator struct {
	calls   int
	batches [][]model.Part
}

func (f *fakePartCreator) CreateBulk(ctx context.Context, parts []model.Part) error {
	f.calls++
	f.batches = append(f.batches, parts)
	return nil
}

func assetWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func importRequest(t *testing.T, path string, workbook []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "import.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestImportAssetsUsesSingleBatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	assets := &fakeAssetCreator{}
	h := NewImportHandler(assets, &fakePartCreator{})
	r := gin.New()
	r.POST("/api/v1/import/assets", h.Assets)

	wb := assetWorkbook(t, [][]interface{}{
		{"name", "tag", "status"},
		{"Pump 1", "PMP-001", "operational"},
		{"Compressor", "CMP-002", "down"},
		{"", "ORPHAN", ""},
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, importRequest(t, "/api/v1/import/assets", wb))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, assets.calls)
	require.Len(t, assets.batches[0], 2)

	var resp struct {
		Imported int `json:"imported"`
		Errors   []struct {
			Row int `json:"row"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Imported)
	require.Len(t, resp.Errors, 1)
	require.Equal(t, 4, resp.Errors[0].Row)
}

func TestImportPartsUsesSingleBatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	parts := &fakePartCreator{}
	h := NewImportHandler(&fakeAssetCreator{}, parts)
	r := gin.New()
	r.POST("/api/v1/import/parts", h.Parts)

	wb := assetWorkbook(t, [][]interface{}{
		{"name", "part_number", "quantity", "min_quantity"},
		{"Bearing", "BRG-6204", "10", "2"},
		{"Filter", "FLT-88", "4", "1"},
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, importRequest(t, "/api/v1/import/parts", wb))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, parts.calls)
	require.Len(t, parts.batches[0], 2)
}
