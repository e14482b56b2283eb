package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/usecase"
)

type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportJSON ExportFormat = "json"
)

const exportSheet = "UseCases"

var exportHeader = []any{"id", "UseCase", "Product", "SuccessCriterion", "Measurement"}

type exportRecord struct {
	ID               int64  `json:"id"`
	UseCase          string `json:"UseCase"`
	Product          string `json:"Product"`
	SuccessCriterion string `json:"SuccessCriterion"`
	Measurement      string `json:"Measurement"`
}

type ExportService struct {
	useCases usecase.Repository
}

func NewExportService(useCases usecase.Repository) *ExportService {
	return &ExportService{useCases: useCases}
}

// Export writes the filtered catalog to w and returns the number of rows.
func (s *ExportService) Export(ctx context.Context, w io.Writer, format ExportFormat, params *usecase.FindParams) (int, error) {
	items, err := s.useCases.List(ctx, params)
	if err != nil {
		return 0, errors.Wrap(err, "export")
	}
	switch format {
	case ExportXLSX:
		return len(items), writeXLSX(w, items)
	case ExportJSON, "":
		return len(items), writeJSON(w, items)
	default:
		return 0, errors.Errorf("unsupported export format %q", format)
	}
}

func writeJSON(w io.Writer, items []usecase.UseCase) error {
	records := make([]exportRecord, 0, len(items))
	for _, u := range items {
		records = append(records, exportRecord{
			ID:               u.ID(),
			UseCase:          u.Name(),
			Product:          u.Product(),
			SuccessCriterion: u.SuccessCriterion(),
			Measurement:      u.Measurement(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeXLSX(w io.Writer, items []usecase.UseCase) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return errors.Wrap(err, "write header")
	}
	for i, u := range items {
		row := []any{u.ID(), u.Name(), u.Product(), u.SuccessCriterion(), u.Measurement()}
		if err := f.SetSheetRow(exportSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return errors.Wrapf(err, "write row %d", i+2)
		}
	}
	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return errors.Wrap(err, "freeze header")
	}
	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}
