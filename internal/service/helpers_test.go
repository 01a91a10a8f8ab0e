package service

import (
	"io"
	"time"

	"checador-report/internal/models"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testEntry() *logrus.Entry {
	return logrus.NewEntry(testLogger())
}

func ts(day, hour, min int) time.Time {
	return time.Date(2024, 1, day, hour, min, 0, 0, time.UTC)
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func punchTable(rows ...[]string) *models.RawTable {
	return &models.RawTable{
		Headers: []string{"Employee", "Employee Name", "Time", "Shift"},
		Rows:    rows,
	}
}
