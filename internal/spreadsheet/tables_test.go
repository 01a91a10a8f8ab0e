package spreadsheet

import (
	"testing"
	"time"

	"checador-report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, min int) time.Time {
	return time.Date(2024, 1, day, hour, min, 0, 0, time.UTC)
}

func sampleReport() *models.Report {
	ana := models.NewSession("Ana", "A1", at(1, 0, 0), at(1, 8, 0), at(1, 12, 0), at(1, 17, 0))
	luis := models.NewSession("Luis", "", at(2, 0, 0), at(2, 9, 0))

	anaRow := models.ReconciledRow{Session: ana, EmployeeID: models.NewEmployeeID("101"), WorkedSeconds: 32400, ExpectedSeconds: 28800}
	luisRow := models.ReconciledRow{Session: luis, EmployeeID: models.NewEmployeeID(""), WorkedSeconds: 0, ExpectedSeconds: 0}

	return &models.Report{
		Detail: []models.DetailRow{
			&models.DailyRow{ReconciledRow: anaRow},
			&models.TotalsRow{EmployeeID: anaRow.EmployeeID, EmployeeName: "Ana", DaysWorked: 1, ExpectedSeconds: 28800, WorkedSeconds: 32400},
			&models.DailyRow{ReconciledRow: luisRow},
			&models.TotalsRow{EmployeeName: "Luis", DaysWorked: 1},
		},
		Summary: []models.EmployeeSummary{
			{EmployeeID: anaRow.EmployeeID, Name: "Ana", PeriodDays: 1, DaysWorked: 1, TotalWorkedSeconds: 32400, TotalExpectedSeconds: 28800, VarianceSeconds: 3600},
			{Name: "Luis", PeriodDays: 1, DaysWorked: 1, TotalExpectedSeconds: 3600, VarianceSeconds: -3600},
		},
		MaxPunches: 3,
	}
}

func TestDetailTable(t *testing.T) {
	sheet := DetailTable(sampleReport())

	assert.Equal(t, DetailSheet, sheet.Name)
	assert.Equal(t, []string{
		"ID Empleado", "Nombre del empleado", "Turno", "Fecha", "Día",
		"Horas esperadas", "Horas totales", "Checada 1", "Checada 2", "Checada 3",
	}, sheet.Headers)
	require.Len(t, sheet.Rows, 4)
	assert.Equal(t, []int{1, 3}, sheet.Totals)

	assert.Equal(t, []any{
		int64(101), "Ana", "A1", "2024-01-01", "Lunes", float64(28800), "09:00:00", "08:00:00", "12:00:00", "17:00:00",
	}, sheet.Rows[0])
	assert.Equal(t, []any{
		int64(101), "Ana", "Totales", 1, "", float64(28800), "09:00:00", "", "", "",
	}, sheet.Rows[1])
	assert.Equal(t, []any{
		"", "Luis", "", "2024-01-02", "Martes", float64(0), "00:00:00", "09:00:00", "", "",
	}, sheet.Rows[2])
}

func TestDetailTable_AtLeastOnePunchColumn(t *testing.T) {
	sheet := DetailTable(&models.Report{})
	assert.Equal(t, "Checada 1", sheet.Headers[len(sheet.Headers)-1])
	assert.Empty(t, sheet.Rows)
}

func TestSummaryTable(t *testing.T) {
	sheet := SummaryTable(sampleReport())

	assert.Equal(t, SummarySheet, sheet.Name)
	assert.Len(t, sheet.Headers, 9)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []any{
		int64(101), "Ana", 1, 1, "09:00:00", float64(32400), float64(28800), float64(3600), "01:00:00",
	}, sheet.Rows[0])
	assert.Equal(t, "-01:00:00", sheet.Rows[1][8])
	assert.Equal(t, "", sheet.Rows[1][0])
}

func TestColumnWidth(t *testing.T) {
	sheet := &Sheet{
		Headers: []string{"Nombre", "Checada 1", "Otro"},
		Rows: [][]any{
			{"Ana María de los Ángeles Fernández Gutiérrez", "08:00:00", 1},
		},
	}

	assert.Equal(t, float64(47), ColumnWidth(sheet, 0))
	assert.Equal(t, float64(12), ColumnWidth(sheet, 1))
	assert.Equal(t, float64(12), ColumnWidth(sheet, 2))
}
