package models

import (
	"time"

	"checador-report/pkg/weekdays"
)

// TotalsShiftLabel - метка итоговой строки сотрудника в детальном листе
const TotalsShiftLabel = "Totales"

// ReconciledRow - сессия с отработанным и ожидаемым временем
type ReconciledRow struct {
	Session         *Session
	EmployeeID      EmployeeID
	WorkedSeconds   float64
	ExpectedSeconds float64
}

// Weekday возвращает название дня недели рабочего дня сессии
func (r ReconciledRow) Weekday() string {
	return weekdays.NameOf(r.Session.WorkDay)
}

// DetailRow - строка детального листа: DailyRow или TotalsRow
type DetailRow interface {
	Employee() (EmployeeID, string)
	isDetailRow()
}

// DailyRow - одна сессия
type DailyRow struct {
	ReconciledRow
}

func (r *DailyRow) Employee() (EmployeeID, string) {
	return r.EmployeeID, r.Session.EmployeeName
}

func (*DailyRow) isDetailRow() {}

// TotalsRow - итог по сотруднику, идет сразу после его последней дневной строки
type TotalsRow struct {
	EmployeeID      EmployeeID
	EmployeeName    string
	DaysWorked      int
	ExpectedSeconds float64
	WorkedSeconds   float64
}

func (r *TotalsRow) Employee() (EmployeeID, string) {
	return r.EmployeeID, r.EmployeeName
}

func (*TotalsRow) isDetailRow() {}

// EmployeeSummary - итоги сотрудника за весь период
type EmployeeSummary struct {
	EmployeeID           EmployeeID
	Name                 string
	FirstDay             time.Time
	LastDay              time.Time
	PeriodDays           int
	DaysWorked           int
	TotalWorkedSeconds   float64
	TotalExpectedSeconds float64
	VarianceSeconds      float64
}

// CalculateStats вычисляет длину периода и разницу между отработанным и ожидаемым
func (s *EmployeeSummary) CalculateStats() {
	if s.FirstDay.IsZero() || s.LastDay.IsZero() {
		s.PeriodDays = 0
	} else {
		s.PeriodDays = DaysBetween(s.FirstDay, s.LastDay) + 1
	}
	s.VarianceSeconds = s.TotalWorkedSeconds - s.TotalExpectedSeconds
}

// Report - результат одной генерации отчета
type Report struct {
	RunID      string
	Detail     []DetailRow
	Summary    []EmployeeSummary
	MaxPunches int
	// ExpectedHoursErr - почему таблица ожидаемых часов недоступна; тогда все ожидаемые значения = 0
	ExpectedHoursErr error
	RowsRead         int
	RowsDropped      int
	GeneratedAt      time.Time
}

// Degraded проверяет, построен ли отчет без таблицы ожидаемых часов
func (r *Report) Degraded() bool {
	return r.ExpectedHoursErr != nil
}
