package models

import (
	"strconv"
	"strings"
	"time"
)

// WorkDayCutoffHour - отметки раньше этого часа относятся к предыдущему рабочему дню (ночные смены)
const WorkDayCutoffHour = 6

// Punch - одна отметка прихода/ухода сотрудника
type Punch struct {
	EmployeeName string
	Time         time.Time
	Shift        string // пустая строка = отметка без смены
	WorkDay      time.Time
}

// NewPunch создает отметку и вычисляет рабочий день
func NewPunch(employeeName string, t time.Time, shift string) Punch {
	return Punch{
		EmployeeName: employeeName,
		Time:         t,
		Shift:        shift,
		WorkDay:      WorkDayOf(t),
	}
}

// IsLabeled проверяет, указана ли смена
func (p Punch) IsLabeled() bool {
	return p.Shift != ""
}

// WorkDayOf возвращает рабочий день для момента времени.
// Граница смены считается в зоне отметки, результат - календарная дата (полночь UTC),
// поэтому отметки с разными смещениями за один день дают одну и ту же дату.
func WorkDayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if t.Hour() < WorkDayCutoffHour {
		return day.AddDate(0, 0, -1)
	}
	return day
}

// DaysBetween возвращает число календарных дней от from до to
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// EmployeeID - идентификатор сотрудника из исходной таблицы. Пустое значение = не найден.
type EmployeeID string

// NewEmployeeID нормализует значение из ячейки: "123.0" -> "123"
func NewEmployeeID(raw string) EmployeeID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int64(f)) {
		return EmployeeID(strconv.FormatInt(int64(f), 10))
	}
	return EmployeeID(raw)
}

// Int возвращает числовой идентификатор для поиска в таблице ожидаемых часов
func (id EmployeeID) Int() (int64, bool) {
	if id == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(id), 64)
	if err != nil {
		return 0, false
	}
	return int64(f), true
}

func (id EmployeeID) IsEmpty() bool {
	return id == ""
}

func (id EmployeeID) String() string {
	return string(id)
}
