package service

import (
	"sort"

	"checador-report/internal/models"
)

type sessionKey struct {
	employee string
	shift    string
	workDay  int64
}

type dayKey struct {
	employee string
	workDay  int64
}

// GroupSessions собирает отметки в сессии (сотрудник, смена, рабочий день).
//
// Отметки без смены сначала пробуют присоединиться к сессии со сменой того же
// сотрудника за тот же рабочий день. Если таких сессий несколько (несколько смен
// в один день), берется первая в порядке (сотрудник, смена, день), то есть смена
// с наименьшей меткой. Оставшиеся отметки без смены группируются по (сотрудник, день).
//
// Результат отсортирован по сотруднику и рабочему дню; внутри дня сначала сессии
// со сменой, затем без смены.
func GroupSessions(punches []models.Punch) []*models.Session {
	labeled := make(map[sessionKey]*models.Session)
	var unlabeled []models.Punch

	for _, p := range punches {
		if !p.IsLabeled() {
			unlabeled = append(unlabeled, p)
			continue
		}
		key := sessionKey{employee: p.EmployeeName, shift: p.Shift, workDay: p.WorkDay.Unix()}
		s, ok := labeled[key]
		if !ok {
			s = models.NewSession(p.EmployeeName, p.Shift, p.WorkDay)
			labeled[key] = s
		}
		s.AddPunch(p.Time)
	}

	sessions := make([]*models.Session, 0, len(labeled))
	for _, s := range labeled {
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if a.EmployeeName != b.EmployeeName {
			return a.EmployeeName < b.EmployeeName
		}
		if a.Shift != b.Shift {
			return a.Shift < b.Shift
		}
		return a.WorkDay.Before(b.WorkDay)
	})

	// Первая сессия со сменой для каждой пары (сотрудник, день)
	firstByDay := make(map[dayKey]*models.Session)
	for _, s := range sessions {
		key := dayKey{employee: s.EmployeeName, workDay: s.WorkDay.Unix()}
		if _, ok := firstByDay[key]; !ok {
			firstByDay[key] = s
		}
	}

	extra := make(map[dayKey]*models.Session)
	var extraSessions []*models.Session
	for _, p := range unlabeled {
		key := dayKey{employee: p.EmployeeName, workDay: p.WorkDay.Unix()}
		if s, ok := firstByDay[key]; ok {
			s.AddPunch(p.Time)
			continue
		}
		s, ok := extra[key]
		if !ok {
			s = models.NewSession(p.EmployeeName, "", p.WorkDay)
			extra[key] = s
			extraSessions = append(extraSessions, s)
		}
		s.AddPunch(p.Time)
	}

	sessions = append(sessions, extraSessions...)
	SortSessions(sessions)
	return sessions
}

// SortSessions сортирует сессии по сотруднику и рабочему дню, сохраняя порядок внутри дня
func SortSessions(sessions []*models.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if a.EmployeeName != b.EmployeeName {
			return a.EmployeeName < b.EmployeeName
		}
		return a.WorkDay.Before(b.WorkDay)
	})
}

// sessionDays возвращает число различных рабочих дней
func sessionDays(sessions []*models.Session) int {
	days := make(map[int64]struct{})
	for _, s := range sessions {
		days[s.WorkDay.Unix()] = struct{}{}
	}
	return len(days)
}
