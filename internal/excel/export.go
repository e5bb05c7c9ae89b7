package excel

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spler/influencer-hub/internal/domain"
)

// ExportFilename names the attachment with the current UTC date.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("influencers_%s.xlsx", now.UTC().Format("2006-01-02"))
}

// Export serializes the records into an xlsx workbook restricted to the
// selected columns, with the bilingual display label as each header.
func Export(records []*domain.Influencer, columns []string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]any, len(columns))
	for i, col := range columns {
		label, ok := domain.ColumnLabels[col]
		if !ok {
			label = col
		}
		header[i] = label
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for rowIdx, rec := range records {
		values := make([]any, len(columns))
		for i, col := range columns {
			values[i] = rec.Field(col)
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", rowIdx+2, err)
		}
	}

	return f.WriteToBuffer()
}
