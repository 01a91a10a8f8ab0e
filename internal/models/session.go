package models

import (
	"sort"
	"time"
)

// Session - группа отметок одного сотрудника за один рабочий день в одной смене
type Session struct {
	EmployeeName string
	Shift        string
	WorkDay      time.Time
	Punches      []time.Time // отсортированы, без дубликатов
}

// NewSession создает сессию из произвольного набора отметок
func NewSession(employeeName, shift string, workDay time.Time, punches ...time.Time) *Session {
	s := &Session{
		EmployeeName: employeeName,
		Shift:        shift,
		WorkDay:      workDay,
	}
	for _, p := range punches {
		s.AddPunch(p)
	}
	return s
}

// AddPunch вставляет отметку с сохранением порядка. Возвращает false, если такая уже есть.
func (s *Session) AddPunch(t time.Time) bool {
	i := sort.Search(len(s.Punches), func(i int) bool {
		return !s.Punches[i].Before(t)
	})
	if i < len(s.Punches) && s.Punches[i].Equal(t) {
		return false
	}

	s.Punches = append(s.Punches, time.Time{})
	copy(s.Punches[i+1:], s.Punches[i:])
	s.Punches[i] = t
	return true
}

// WorkedSeconds вычисляет отработанное время: последняя отметка минус первая.
// Одна отметка без пары - сессия нулевой длительности.
func (s *Session) WorkedSeconds() float64 {
	if len(s.Punches) < 2 {
		return 0
	}
	return s.Punches[len(s.Punches)-1].Sub(s.Punches[0]).Seconds()
}
