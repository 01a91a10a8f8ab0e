package weekdays

import (
	"strings"
	"time"
)

// Названия дней недели в том виде, в котором они приходят в таблице ожидаемых часов
const (
	Monday    = "Lunes"
	Tuesday   = "Martes"
	Wednesday = "Miércoles"
	Thursday  = "Jueves"
	Friday    = "Viernes"
	Saturday  = "Sábado"
	Sunday    = "Domingo"
)

var names = [...]string{
	time.Sunday:    Sunday,
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
}

// Короткие коды колонок NocoDB: "# L", "#L", "L"
var shortCodes = map[string]string{
	"L": Monday,
	"M": Tuesday,
	"X": Wednesday,
	"J": Thursday,
	"V": Friday,
	"S": Saturday,
	"D": Sunday,
}

// NameOf возвращает название дня недели для даты. Для нулевой даты - пустая строка.
func NameOf(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return names[t.Weekday()]
}

// ResolveColumn сопоставляет заголовок колонки с названием дня недели.
// Поддерживаются варианты "# L", "#L", "L" и "Lunes" (а также без диакритики: "Miercoles").
func ResolveColumn(header string) (string, bool) {
	h := strings.TrimSpace(header)
	h = strings.TrimSpace(strings.TrimPrefix(h, "#"))
	if h == "" {
		return "", false
	}

	if name, ok := shortCodes[h]; ok {
		return name, true
	}

	folded := stripAccents(h)
	for _, name := range names {
		if strings.EqualFold(folded, stripAccents(name)) {
			return name, true
		}
	}
	return "", false
}

// ColumnRank возвращает приоритет варианта заголовка, если несколько колонок относятся
// к одному дню: "# L" (0), "#L" (1), "L" (2), "Lunes" (3). Меньше - приоритетнее.
func ColumnRank(header string) int {
	h := strings.TrimSpace(header)
	if rest, ok := strings.CutPrefix(h, "#"); ok {
		if strings.HasPrefix(rest, " ") {
			return 0
		}
		return 1
	}
	if _, ok := shortCodes[h]; ok {
		return 2
	}
	return 3
}

func stripAccents(s string) string {
	return strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
		"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U",
	).Replace(s)
}
