package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"doctag/internal/model"
)

const sheetName = "Документы"

var excelHeaders = []string{
	"Файл", "Тип договора", "Контрагент", "Предмет",
	"Дата подписания", "Начало действия", "Окончание действия",
	"Сумма", "Статус", "Оценка", "Замечания",
}

// WriteExcel renders the batch as a registry spreadsheet, one row per
// document, with status rows tinted for quick triage.
func WriteExcel(batch *Batch, path string) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("report: create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("report: delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return fmt.Errorf("report: header style: %w", err)
	}
	statusStyles, err := buildStatusStyles(f)
	if err != nil {
		return err
	}

	for col, header := range excelHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("report: header cell: %w", err)
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(excelHeaders), 1)
	if err := f.SetCellStyle(sheetName, "A1", endHeader, headerStyle); err != nil {
		return fmt.Errorf("report: header style apply: %w", err)
	}

	for i, r := range batch.Results {
		row := i + 2
		status := model.StatusError
		score := 0.0
		warnings := r.Error
		if r.Validation != nil {
			status = r.Validation.Status
			score = r.Validation.Score
			warnings = strings.Join(r.Validation.Warnings, "; ")
		}
		values := []any{
			r.Filename,
			r.Metadata.ContractType,
			r.Metadata.Counterparty,
			r.Metadata.Subject,
			r.Metadata.DateSigned,
			r.Metadata.DateStart,
			r.Metadata.DateEnd,
			r.Metadata.Amount,
			string(status),
			score,
			warnings,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("report: row %d: %w", row, err)
			}
		}
		if style, ok := statusStyles[status]; ok {
			start, _ := excelize.CoordinatesToCellName(1, row)
			end, _ := excelize.CoordinatesToCellName(len(excelHeaders), row)
			if err := f.SetCellStyle(sheetName, start, end, style); err != nil {
				return fmt.Errorf("report: row style %d: %w", row, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 28); err == nil {
		_ = f.SetColWidth(sheetName, "B", "D", 32)
		_ = f.SetColWidth(sheetName, "E", "H", 16)
		_ = f.SetColWidth(sheetName, "K", "K", 60)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

func buildStatusStyles(f *excelize.File) (map[model.ValidationStatus]int, error) {
	colors := map[model.ValidationStatus]string{
		model.StatusWarning:    "#FFF2CC",
		model.StatusUnreliable: "#FCE4D6",
		model.StatusError:      "#F8CBAD",
	}
	styles := make(map[model.ValidationStatus]int, len(colors))
	for status, color := range colors {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return nil, fmt.Errorf("report: status style: %w", err)
		}
		styles[status] = id
	}
	return styles, nil
}
