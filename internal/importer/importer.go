// Package importer parses xlsx workbooks into CMMS entities. First sheet
// only; the first row is the header, matched case-insensitively.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/cmms-platform/cmms-service/internal/model"
)

// RowError is one skipped row with the reason.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func readRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// headerIndex maps lowercased header names to column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			idx[h] = i
		}
	}
	return idx
}

func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParseAssets converts a workbook into asset rows. Rows without a name are
// reported and skipped; unknown statuses fall back to operational.
func ParseAssets(r io.Reader) ([]model.Asset, []RowError, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("workbook has no data rows")
	}
	idx := headerIndex(rows[0])
	if _, ok := idx["name"]; !ok {
		return nil, nil, fmt.Errorf("missing required column: name")
	}

	var assets []model.Asset
	var rowErrs []RowError
	for n, row := range rows[1:] {
		rowNum := n + 2 // 1-based, after the header
		name := cell(row, idx, "name")
		if name == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "name is empty"})
			continue
		}
		status := model.AssetStatus(strings.ToLower(cell(row, idx, "status")))
		switch status {
		case model.AssetStatusOperational, model.AssetStatusDown, model.AssetStatusMaintenance, model.AssetStatusRetired:
		default:
			status = model.AssetStatusOperational
		}
		assets = append(assets, model.Asset{
			Name:         name,
			Tag:          cell(row, idx, "tag"),
			SerialNumber: cell(row, idx, "serial_number"),
			Model:        cell(row, idx, "model"),
			Manufacturer: cell(row, idx, "manufacturer"),
			Status:       status,
			Notes:        cell(row, idx, "notes"),
		})
	}
	logrus.WithFields(logrus.Fields{"parsed": len(assets), "skipped": len(rowErrs)}).Info("import: assets parsed")
	return assets, rowErrs, nil
}

// ParseParts converts a workbook into part rows.
func ParseParts(r io.Reader) ([]model.Part, []RowError, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("workbook has no data rows")
	}
	idx := headerIndex(rows[0])
	if _, ok := idx["name"]; !ok {
		return nil, nil, fmt.Errorf("missing required column: name")
	}

	var parts []model.Part
	var rowErrs []RowError
	for n, row := range rows[1:] {
		rowNum := n + 2
		name := cell(row, idx, "name")
		if name == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "name is empty"})
			continue
		}
		qty, err := parseIntCell(cell(row, idx, "quantity"))
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "quantity: " + err.Error()})
			continue
		}
		minQty, err := parseIntCell(cell(row, idx, "min_quantity"))
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "min_quantity: " + err.Error()})
			continue
		}
		cost := 0.0
		if v := cell(row, idx, "unit_cost"); v != "" {
			cost, err = strconv.ParseFloat(v, 64)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "unit_cost: not a number"})
				continue
			}
		}
		parts = append(parts, model.Part{
			Name:        name,
			PartNumber:  cell(row, idx, "part_number"),
			Description: cell(row, idx, "description"),
			Quantity:    qty,
			MinQuantity: minQty,
			UnitCost:    cost,
		})
	}
	logrus.WithFields(logrus.Fields{"parsed": len(parts), "skipped": len(rowErrs)}).Info("import: parts parsed")
	return parts, rowErrs, nil
}

func parseIntCell(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	return n, nil
}
