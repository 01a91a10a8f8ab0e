package spreadsheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"checador-report/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	headerFill      = "3498DB"
	headerFontColor = "FFFFFF"
	totalsFill      = "D3D3D3"
	negativeFill    = "FFFFFF"
	positiveFill    = "1CC0EE"
)

// Минимальная ширина колонок по заголовку
var minColumnWidths = map[string]float64{
	"ID Empleado":                 12,
	"Nombre del empleado":         30,
	"Nombre":                      30,
	"Turno":                       10,
	"Fecha":                       12,
	"Día":                         12,
	"Horas esperadas":             20,
	"Horas totales":               15,
	"Horas trabajadas":            15,
	"Horas Trabajadas (Segundos)": 22,
	"Total Segundos Esperados":    22,
	"Diferencia (Segundos)":       22,
	"Diferencia (HH:MM:SS)":       22,
	"Días del periodo":            18,
	"Días trabajados":             18,
}

const varianceHeader = "Diferencia (HH:MM:SS)"

// Writer сохраняет отчет в книгу Excel с листами "Detalle" и "Resumen"
type Writer struct {
	logger *logrus.Logger
}

func NewWriter(logger *logrus.Logger) *Writer {
	return &Writer{logger: logger}
}

// WriteReport пишет книгу во временный файл рядом с path и переименовывает его.
// При ошибке на месте path ничего не появляется.
func (w *Writer) WriteReport(report *models.Report, path string) error {
	file, err := BuildWorkbook(report)
	if err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}
	defer func() { _ = file.Close() }()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".checador-*.xlsx")
	if err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := file.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &models.PersistenceError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &models.PersistenceError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &models.PersistenceError{Path: path, Err: err}
	}

	w.logger.WithFields(logrus.Fields{
		"path":     path,
		"detail":   len(report.Detail),
		"summary":  len(report.Summary),
		"degraded": report.Degraded(),
	}).Info("Report workbook saved")

	return nil
}

// BuildWorkbook строит книгу в памяти вместе с оформлением
func BuildWorkbook(report *models.Report) (*excelize.File, error) {
	file := excelize.NewFile()

	detail := DetailTable(report)
	summary := SummaryTable(report)

	if err := file.SetSheetName(file.GetSheetName(0), detail.Name); err != nil {
		_ = file.Close()
		return nil, err
	}
	if _, err := file.NewSheet(summary.Name); err != nil {
		_ = file.Close()
		return nil, err
	}

	styles, err := newSheetStyles(file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	for _, sheet := range []*Sheet{detail, summary} {
		if err := writeSheet(file, sheet); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("sheet %s: %w", sheet.Name, err)
		}
		if err := styles.apply(file, sheet); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("sheet %s: %w", sheet.Name, err)
		}
	}
	if err := styles.applyVariance(file, summary, report.Summary); err != nil {
		_ = file.Close()
		return nil, err
	}

	file.SetActiveSheet(0)
	return file, nil
}

func writeSheet(file *excelize.File, sheet *Sheet) error {
	headers := make([]any, len(sheet.Headers))
	for i, h := range sheet.Headers {
		headers[i] = h
	}
	if err := file.SetSheetRow(sheet.Name, "A1", &headers); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet.Name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

type sheetStyles struct {
	header   int
	totals   int
	negative int
	positive int
}

func newSheetStyles(file *excelize.File) (*sheetStyles, error) {
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	var s sheetStyles
	var err error
	if s.header, err = file.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: headerFontColor},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Border: thin,
	}); err != nil {
		return nil, err
	}
	if s.totals, err = file.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{totalsFill}, Pattern: 1},
		Border: thin,
	}); err != nil {
		return nil, err
	}
	if s.negative, err = file.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{negativeFill}, Pattern: 1},
	}); err != nil {
		return nil, err
	}
	if s.positive, err = file.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{positiveFill}, Pattern: 1},
	}); err != nil {
		return nil, err
	}
	return &s, nil
}

// apply красит заголовок и итоговые строки, выставляет ширину колонок
func (s *sheetStyles) apply(file *excelize.File, sheet *Sheet) error {
	lastCol, err := excelize.ColumnNumberToName(len(sheet.Headers))
	if err != nil {
		return err
	}

	if err := file.SetCellStyle(sheet.Name, "A1", lastCol+"1", s.header); err != nil {
		return err
	}

	for _, idx := range sheet.Totals {
		row := idx + 2
		if err := file.SetCellStyle(sheet.Name, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), s.totals); err != nil {
			return err
		}
	}

	for i := range sheet.Headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := file.SetColWidth(sheet.Name, col, col, ColumnWidth(sheet, i)); err != nil {
			return err
		}
	}
	return nil
}

// applyVariance красит ячейку разницы: отрицательная - белая, положительная - голубая
func (s *sheetStyles) applyVariance(file *excelize.File, sheet *Sheet, summary []models.EmployeeSummary) error {
	col := -1
	for i, h := range sheet.Headers {
		if h == varianceHeader {
			col = i + 1
		}
	}
	if col < 0 {
		return nil
	}

	for i, row := range summary {
		var style int
		switch {
		case row.VarianceSeconds < 0:
			style = s.negative
		case row.VarianceSeconds > 0:
			style = s.positive
		default:
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col, i+2)
		if err != nil {
			return err
		}
		if err := file.SetCellStyle(sheet.Name, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

// ColumnWidth - длина самого длинного значения колонки + 3, но не меньше минимума для заголовка
func ColumnWidth(sheet *Sheet, col int) float64 {
	header := sheet.Headers[col]
	maxLen := utf8.RuneCountInString(header)
	for _, row := range sheet.Rows {
		if col >= len(row) {
			continue
		}
		if n := utf8.RuneCountInString(fmt.Sprint(row[col])); n > maxLen {
			maxLen = n
		}
	}

	width := float64(maxLen + 3)
	minWidth, ok := minColumnWidths[header]
	if !ok {
		minWidth = 12
		if strings.HasPrefix(header, "Checada") {
			minWidth = 10
		}
	}
	if width < minWidth {
		width = minWidth
	}
	return width
}
