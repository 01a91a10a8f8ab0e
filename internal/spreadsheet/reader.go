package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"checador-report/internal/models"

	"github.com/extrame/xls"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Ограничение на число строк при чтении старого формата .xls
const maxXLSRows = 100000

const utf8BOM = "\xef\xbb\xbf"

// Reader читает выгрузку отметок: первая строка - заголовки
type Reader struct {
	logger *logrus.Logger
}

func NewReader(logger *logrus.Logger) *Reader {
	return &Reader{logger: logger}
}

// ReadTable открывает файл и определяет формат по расширению
func (r *Reader) ReadTable(path string) (*models.RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return r.ReadFrom(file, filepath.Base(path))
}

// ReadFrom читает таблицу из потока; filename нужен только для определения формата
func (r *Reader) ReadFrom(src io.Reader, filename string) (*models.RawTable, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(data)
	case ".xls":
		rows, err = readXLS(data)
	case ".csv":
		rows, err = readCSV(data)
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		r.logger.WithError(err).WithField("file", filename).Error("Failed to read spreadsheet")
		return nil, err
	}

	table := tableFromRows(rows)
	if table == nil {
		return nil, models.ErrEmptyWorkbook
	}

	r.logger.WithFields(logrus.Fields{
		"file":    filename,
		"columns": len(table.Headers),
		"rows":    len(table.Rows),
	}).Info("Spreadsheet loaded")

	return table, nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, models.ErrEmptyWorkbook
	}

	// Сырые значения: даты приходят серийными числами и разбираются нормализатором
	return file.GetRows(sheetName, excelize.Options{RawCellValue: true})
}

// readXLS читает только первый лист, как и для .xlsx
func readXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, models.ErrEmptyWorkbook
	}

	return sheetRows(int(sheet.MaxRow)+1, func(i int) []string {
		row := sheet.Row(i)
		if row == nil {
			return nil
		}
		cells := make([]string, 0, row.LastCol()+1)
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		return cells
	}), nil
}

// sheetRows собирает не более maxXLSRows строк и отрезает пустые ячейки в конце строки.
// Отсутствующие строки листа остаются пустыми, чтобы не сдвигать нумерацию.
func sheetRows(count int, row func(i int) []string) [][]string {
	count = min(count, maxXLSRows)
	rows := make([][]string, 0, count)
	for i := 0; i < count; i++ {
		cells := row(i)
		for len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
			cells = cells[:len(cells)-1]
		}
		rows = append(rows, cells)
	}
	return rows
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte(utf8BOM))))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}

// tableFromRows берет первую непустую строку как заголовки. nil, если заголовков нет.
func tableFromRows(rows [][]string) *models.RawTable {
	for i, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		headers := make([]string, len(row))
		for j, h := range row {
			headers[j] = strings.TrimSpace(h)
		}
		return &models.RawTable{
			Headers: headers,
			Rows:    rows[i+1:],
		}
	}
	return nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
