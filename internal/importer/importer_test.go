package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cmms-platform/cmms-service/internal/model"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, addr, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestParseAssets(t *testing.T) {
	r := workbook(t, [][]interface{}{
		{"Name", "Tag", "Status", "Manufacturer"},
		{"Air Handler 3", "AHU-3", "down", "Trane"},
		{"", "ghost", "", ""},
		{"Chiller 1", "CH-1", "definitely-broken", ""},
	})

	assets, rowErrs, err := ParseAssets(r)
	require.NoError(t, err)
	require.Len(t, assets, 2)

	require.Equal(t, "Air Handler 3", assets[0].Name)
	require.Equal(t, model.AssetStatusDown, assets[0].Status)
	require.Equal(t, "Trane", assets[0].Manufacturer)

	// неизвестный статус превращается в operational
	require.Equal(t, model.AssetStatusOperational, assets[1].Status)

	require.Len(t, rowErrs, 1)
	require.Equal(t, 3, rowErrs[0].Row)
}

func TestParseAssetsMissingNameColumn(t *testing.T) {
	r := workbook(t, [][]interface{}{
		{"Tag", "Status"},
		{"AHU-3", "down"},
	})
	_, _, err := ParseAssets(r)
	require.Error(t, err)
	require.Contains(t, err.Error(), "name")
}

func TestParseParts(t *testing.T) {
	r := workbook(t, [][]interface{}{
		{"name", "part_number", "quantity", "min_quantity", "unit_cost"},
		{"V-Belt", "VB-100", "12", "4", "8.75"},
		{"Filter", "F-20", "not-a-number", "1", ""},
		{"Bearing", "B-5", "", "", ""},
	})

	parts, rowErrs, err := ParseParts(r)
	require.NoError(t, err)
	require.Len(t, parts, 2)

	require.Equal(t, "V-Belt", parts[0].Name)
	require.Equal(t, 12, parts[0].Quantity)
	require.Equal(t, 4, parts[0].MinQuantity)
	require.InDelta(t, 8.75, parts[0].UnitCost, 0.001)

	// пустые числовые ячейки дают нули
	require.Equal(t, 0, parts[1].Quantity)

	require.Len(t, rowErrs, 1)
	require.Contains(t, rowErrs[0].Message, "quantity")
}

func TestParsePartsEmptyWorkbook(t *testing.T) {
	r := workbook(t, [][]interface{}{
		{"name", "quantity"},
	})
	_, _, err := ParseParts(r)
	require.Error(t, err)
}
