package service

import (
	"time"

	"checador-report/internal/models"
	"checador-report/pkg/weekdays"

	"github.com/sirupsen/logrus"
)

type expectedKey struct {
	employeeID int64
	weekday    string
}

// Reconciler считает отработанное время и подставляет ожидаемое из таблицы.
// Создается на один запуск отчета: кэш поиска не переживает запуск.
type Reconciler struct {
	table  models.ExpectedHoursTable
	ids    map[string]models.EmployeeID
	cache  map[expectedKey]float64
	logger *logrus.Entry
}

func NewReconciler(table models.ExpectedHoursTable, ids map[string]models.EmployeeID, logger *logrus.Entry) *Reconciler {
	return &Reconciler{
		table:  table,
		ids:    ids,
		cache:  make(map[expectedKey]float64),
		logger: logger,
	}
}

// Reconcile обрабатывает сессии в переданном порядке
func (r *Reconciler) Reconcile(sessions []*models.Session) []models.ReconciledRow {
	rows := make([]models.ReconciledRow, 0, len(sessions))
	for _, s := range sessions {
		id := r.ids[s.EmployeeName]
		rows = append(rows, models.ReconciledRow{
			Session:         s,
			EmployeeID:      id,
			WorkedSeconds:   s.WorkedSeconds(),
			ExpectedSeconds: r.ExpectedSeconds(id, s.WorkDay),
		})
	}

	r.logger.WithFields(logrus.Fields{
		"sessions":     len(rows),
		"cached_pairs": len(r.cache),
	}).Info("Sessions reconciled")

	return rows
}

// ExpectedSeconds возвращает ожидаемые секунды для сотрудника в рабочий день.
// Любое отсутствие данных дает 0.
func (r *Reconciler) ExpectedSeconds(id models.EmployeeID, workDay time.Time) float64 {
	if r.table == nil || workDay.IsZero() {
		return 0
	}
	employeeID, ok := id.Int()
	if !ok {
		return 0
	}

	key := expectedKey{employeeID: employeeID, weekday: weekdays.NameOf(workDay)}
	if seconds, ok := r.cache[key]; ok {
		return seconds
	}

	seconds, ok := r.table.Lookup(key.employeeID, key.weekday)
	if !ok {
		r.logger.WithFields(logrus.Fields{
			"employee_id": key.employeeID,
			"weekday":     key.weekday,
		}).Debug("Expected hours not found")
		seconds = 0
	}
	r.cache[key] = seconds
	return seconds
}
