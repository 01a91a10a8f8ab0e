package models

import "strings"

// Названия колонок исходной выгрузки с часов учета
const (
	ColumnEmployeeName = "Employee Name"
	ColumnTime         = "Time"
	ColumnShift        = "Shift"
	ColumnEmployeeID   = "Employee"
)

// RawTable - прочитанный лист: заголовки и строки как текст
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex ищет колонку без учета регистра и пробелов. -1 если не найдена.
func (t *RawTable) ColumnIndex(name string) int {
	want := normalizeHeader(name)
	for i, h := range t.Headers {
		if normalizeHeader(h) == want {
			return i
		}
	}
	return -1
}

// Cell возвращает значение ячейки или пустую строку
func (t *RawTable) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}
