package service

import (
	"sort"

	"checador-report/internal/models"
)

// AssembleReport строит детальный лист и сводку.
// Сотрудники идут в порядке первого появления, строки сотрудника - по рабочему дню,
// после последней строки сотрудника - его итоговая строка.
func AssembleReport(rows []models.ReconciledRow) *models.Report {
	var order []string
	byEmployee := make(map[string][]models.ReconciledRow)
	for _, row := range rows {
		name := row.Session.EmployeeName
		if _, ok := byEmployee[name]; !ok {
			order = append(order, name)
		}
		byEmployee[name] = append(byEmployee[name], row)
	}

	report := &models.Report{
		Detail:     make([]models.DetailRow, 0, len(rows)+len(order)),
		Summary:    make([]models.EmployeeSummary, 0, len(order)),
		MaxPunches: 1,
	}

	for _, name := range order {
		employeeRows := byEmployee[name]
		sort.SliceStable(employeeRows, func(i, j int) bool {
			return employeeRows[i].Session.WorkDay.Before(employeeRows[j].Session.WorkDay)
		})

		summary := summarizeEmployee(name, employeeRows)
		for i := range employeeRows {
			report.Detail = append(report.Detail, &models.DailyRow{ReconciledRow: employeeRows[i]})
			if n := len(employeeRows[i].Session.Punches); n > report.MaxPunches {
				report.MaxPunches = n
			}
		}
		report.Detail = append(report.Detail, &models.TotalsRow{
			EmployeeID:      summary.EmployeeID,
			EmployeeName:    name,
			DaysWorked:      summary.DaysWorked,
			ExpectedSeconds: summary.TotalExpectedSeconds,
			WorkedSeconds:   summary.TotalWorkedSeconds,
		})
		report.Summary = append(report.Summary, summary)
	}

	return report
}

func summarizeEmployee(name string, rows []models.ReconciledRow) models.EmployeeSummary {
	summary := models.EmployeeSummary{Name: name}

	sessions := make([]*models.Session, 0, len(rows))
	for _, row := range rows {
		if summary.EmployeeID.IsEmpty() {
			summary.EmployeeID = row.EmployeeID
		}
		day := row.Session.WorkDay
		if summary.FirstDay.IsZero() || day.Before(summary.FirstDay) {
			summary.FirstDay = day
		}
		if summary.LastDay.IsZero() || day.After(summary.LastDay) {
			summary.LastDay = day
		}
		summary.TotalWorkedSeconds += row.WorkedSeconds
		summary.TotalExpectedSeconds += row.ExpectedSeconds
		sessions = append(sessions, row.Session)
	}

	summary.DaysWorked = sessionDays(sessions)
	summary.CalculateStats()
	return summary
}
