package runlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Run Log"

var exportHeaders = []string{"Timestamp", "Level", "Message", "Context"}

// ExportRunXLSX renders the entries of one run as a single sheet workbook.
func ExportRunXLSX(runID string, entries []LogEntry) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetCellValue(exportSheet, "A1", "Run"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(exportSheet, "B1", runID); err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 3)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, entry := range entries {
		row := i + 4
		values := []any{
			entry.Timestamp.UTC().Format(time.RFC3339),
			string(entry.Level),
			entry.Message,
			encodeContext(entry.Context),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	return f.WriteToBuffer()
}

func encodeContext(data map[string]any) string {
	if len(data) == 0 {
		return ""
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(raw)
}
