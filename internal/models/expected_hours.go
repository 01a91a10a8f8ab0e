package models

import (
	"sort"
	"time"
)

// ExpectedHoursTable - ожидаемые секунды работы: сотрудник -> день недели -> секунды
type ExpectedHoursTable map[int64]map[string]float64

// Lookup ищет ожидаемые секунды для сотрудника и дня недели
func (t ExpectedHoursTable) Lookup(employeeID int64, weekday string) (float64, bool) {
	days, ok := t[employeeID]
	if !ok {
		return 0, false
	}
	seconds, ok := days[weekday]
	return seconds, ok
}

// Set добавляет значение в таблицу
func (t ExpectedHoursTable) Set(employeeID int64, weekday string, seconds float64) {
	days, ok := t[employeeID]
	if !ok {
		days = make(map[string]float64)
		t[employeeID] = days
	}
	days[weekday] = seconds
}

// EmployeeIDs возвращает отсортированный список сотрудников
func (t ExpectedHoursTable) EmployeeIDs() []int64 {
	ids := make([]int64, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Records разворачивает таблицу в строки для сохранения снимка
func (t ExpectedHoursTable) Records() []ExpectedHoursRecord {
	var records []ExpectedHoursRecord
	for _, id := range t.EmployeeIDs() {
		days := t[id]
		weekdays := make([]string, 0, len(days))
		for d := range days {
			weekdays = append(weekdays, d)
		}
		sort.Strings(weekdays)
		for _, d := range weekdays {
			records = append(records, ExpectedHoursRecord{
				EmployeeID: id,
				Weekday:    d,
				Seconds:    days[d],
			})
		}
	}
	return records
}

// ExpectedHoursRecord - строка локального снимка таблицы ожидаемых часов
type ExpectedHoursRecord struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	EmployeeID int64     `gorm:"not null;index" json:"employee_id"`
	Weekday    string    `gorm:"type:varchar(20);not null" json:"weekday"`
	Seconds    float64   `gorm:"not null;default:0" json:"seconds"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ExpectedHoursRecord) TableName() string {
	return "expected_hours"
}

// ExpectedHoursSnapshot - метаданные локального снимка
type ExpectedHoursSnapshot struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	DataHash   string    `gorm:"type:varchar(32);not null" json:"data_hash"`
	Employees  int       `gorm:"not null;default:0" json:"employees"`
	Rows       int       `gorm:"not null;default:0" json:"rows"`
	Source     string    `gorm:"type:varchar(255)" json:"source"`
	LastUpdate time.Time `gorm:"not null" json:"last_update"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ExpectedHoursSnapshot) TableName() string {
	return "expected_hours_snapshots"
}

// TableFromRecords собирает таблицу из строк снимка
func TableFromRecords(records []ExpectedHoursRecord) ExpectedHoursTable {
	table := make(ExpectedHoursTable)
	for _, r := range records {
		table.Set(r.EmployeeID, r.Weekday, r.Seconds)
	}
	return table
}
