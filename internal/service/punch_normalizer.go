package service

import (
	"strconv"
	"strings"
	"time"

	"checador-report/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Форматы времени, которые встречаются в выгрузках с часов учета
var punchTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"01/02/2006 03:04:05 PM",
	"1/2/2006 3:04:05 PM",
	"01/02/2006 03:04 PM",
	"1/2/2006 3:04 PM",
	"1/2/06 15:04",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// Допустимый диапазон серийных дат Excel (1900-01-01 .. 9999-12-31)
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465
)

// NormalizeStats - сколько строк прочитано и сколько отброшено
type NormalizeStats struct {
	RowsRead    int
	RowsDropped int
}

type PunchNormalizer struct {
	logger *logrus.Entry
}

func NewPunchNormalizer(logger *logrus.Entry) *PunchNormalizer {
	return &PunchNormalizer{logger: logger}
}

// Normalize превращает строки выгрузки в отметки. Строки с нераспознанным временем
// или без имени пропускаются. Ошибка только если нет обязательных колонок.
func (n *PunchNormalizer) Normalize(table *models.RawTable) ([]models.Punch, NormalizeStats, error) {
	var stats NormalizeStats

	nameIdx := table.ColumnIndex(models.ColumnEmployeeName)
	timeIdx := table.ColumnIndex(models.ColumnTime)

	var missing []string
	if nameIdx < 0 {
		missing = append(missing, models.ColumnEmployeeName)
	}
	if timeIdx < 0 {
		missing = append(missing, models.ColumnTime)
	}
	if len(missing) > 0 {
		n.logger.WithField("missing", missing).Error("Required columns not found")
		return nil, stats, &models.SchemaError{Missing: missing}
	}

	// Колонка смены необязательна: без нее все отметки без смены
	shiftIdx := table.ColumnIndex(models.ColumnShift)

	punches := make([]models.Punch, 0, len(table.Rows))
	for i, row := range table.Rows {
		if isBlankRow(row) {
			continue
		}
		stats.RowsRead++

		name := table.Cell(row, nameIdx)
		rawTime := table.Cell(row, timeIdx)

		t, ok := ParsePunchTime(rawTime)
		if !ok || name == "" {
			stats.RowsDropped++
			n.logger.WithFields(logrus.Fields{
				"row":  i + 2,
				"name": name,
				"time": rawTime,
			}).Debug("Dropping malformed punch row")
			continue
		}

		punches = append(punches, models.NewPunch(name, t, table.Cell(row, shiftIdx)))
	}

	n.logger.WithFields(logrus.Fields{
		"rows":    stats.RowsRead,
		"punches": len(punches),
		"dropped": stats.RowsDropped,
	}).Info("Punches normalized")

	return punches, stats, nil
}

// ParsePunchTime распознает время отметки: серийное число Excel или текст в одном из известных форматов
func ParsePunchTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial < minExcelSerial || serial > maxExcelSerial {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t.Round(time.Second), true
	}

	for _, layout := range punchTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BuildEmployeeIDMap строит соответствие имя -> ID по колонке "Employee".
// Для каждого имени берется первое непустое значение.
func BuildEmployeeIDMap(table *models.RawTable) map[string]models.EmployeeID {
	ids := make(map[string]models.EmployeeID)

	nameIdx := table.ColumnIndex(models.ColumnEmployeeName)
	idIdx := table.ColumnIndex(models.ColumnEmployeeID)
	if nameIdx < 0 || idIdx < 0 {
		return ids
	}

	for _, row := range table.Rows {
		name := table.Cell(row, nameIdx)
		if name == "" {
			continue
		}
		if _, exists := ids[name]; exists {
			continue
		}
		if id := models.NewEmployeeID(table.Cell(row, idIdx)); !id.IsEmpty() {
			ids[name] = id
		}
	}
	return ids
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
