package spreadsheet

import (
	"fmt"

	"checador-report/internal/models"
)

const (
	DetailSheet  = "Detalle"
	SummarySheet = "Resumen"

	dateLayout  = "2006-01-02"
	punchLayout = "15:04:05"
)

// Заголовки детального листа без колонок отметок
var detailHeaders = []string{
	"ID Empleado",
	"Nombre del empleado",
	"Turno",
	"Fecha",
	"Día",
	"Horas esperadas",
	"Horas totales",
}

var summaryHeaders = []string{
	"ID Empleado",
	"Nombre",
	"Días del periodo",
	"Días trabajados",
	"Horas trabajadas",
	"Horas Trabajadas (Segundos)",
	"Total Segundos Esperados",
	"Diferencia (Segundos)",
	"Diferencia (HH:MM:SS)",
}

// Sheet - лист отчета в виде значений ячеек
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
	// Totals - индексы строк Rows с итогами сотрудника
	Totals []int
}

// PunchHeader - заголовок колонки n-й отметки (с 1)
func PunchHeader(n int) string {
	return fmt.Sprintf("Checada %d", n)
}

// DetailTable разворачивает строки отчета в лист "Detalle"
func DetailTable(report *models.Report) *Sheet {
	maxPunches := report.MaxPunches
	if maxPunches < 1 {
		maxPunches = 1
	}

	headers := append([]string(nil), detailHeaders...)
	for i := 1; i <= maxPunches; i++ {
		headers = append(headers, PunchHeader(i))
	}

	sheet := &Sheet{
		Name:    DetailSheet,
		Headers: headers,
		Rows:    make([][]any, 0, len(report.Detail)),
	}

	for _, detail := range report.Detail {
		row := make([]any, len(headers))
		for i := range row {
			row[i] = ""
		}

		switch r := detail.(type) {
		case *models.DailyRow:
			row[0] = idCell(r.EmployeeID)
			row[1] = r.Session.EmployeeName
			row[2] = r.Session.Shift
			row[3] = r.Session.WorkDay.Format(dateLayout)
			row[4] = r.Weekday()
			row[5] = r.ExpectedSeconds
			row[6] = models.FormatDuration(r.WorkedSeconds)
			for i, p := range r.Session.Punches {
				if idx := len(detailHeaders) + i; idx < len(row) {
					row[idx] = p.Format(punchLayout)
				}
			}
		case *models.TotalsRow:
			row[0] = idCell(r.EmployeeID)
			row[1] = r.EmployeeName
			row[2] = models.TotalsShiftLabel
			// В итоговой строке колонка даты хранит число отработанных дней
			row[3] = r.DaysWorked
			row[5] = r.ExpectedSeconds
			row[6] = models.FormatDuration(r.WorkedSeconds)
			sheet.Totals = append(sheet.Totals, len(sheet.Rows))
		}

		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet
}

// SummaryTable - лист "Resumen", одна строка на сотрудника в порядке report.Summary
func SummaryTable(report *models.Report) *Sheet {
	sheet := &Sheet{
		Name:    SummarySheet,
		Headers: append([]string(nil), summaryHeaders...),
		Rows:    make([][]any, 0, len(report.Summary)),
	}

	for _, s := range report.Summary {
		sheet.Rows = append(sheet.Rows, []any{
			idCell(s.EmployeeID),
			s.Name,
			s.PeriodDays,
			s.DaysWorked,
			models.FormatDuration(s.TotalWorkedSeconds),
			s.TotalWorkedSeconds,
			s.TotalExpectedSeconds,
			s.VarianceSeconds,
			models.FormatSignedDuration(s.VarianceSeconds),
		})
	}

	return sheet
}

// idCell пишет числовой ID числом, остальные как есть
func idCell(id models.EmployeeID) any {
	if n, ok := id.Int(); ok {
		return n
	}
	return id.String()
}
