package service

import (
	"context"
	"fmt"
	"time"

	"checador-report/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TableReader читает исходную выгрузку отметок
type TableReader interface {
	ReadTable(path string) (*models.RawTable, error)
}

// ReportWriter записывает готовый отчет
type ReportWriter interface {
	WriteReport(report *models.Report, path string) error
}

type ReportService struct {
	provider ExpectedHoursProvider
	reader   TableReader
	writer   ReportWriter
	logger   *logrus.Logger
	now      func() time.Time
}

func NewReportService(
	provider ExpectedHoursProvider,
	reader TableReader,
	writer ReportWriter,
	logger *logrus.Logger,
) *ReportService {
	return &ReportService{
		provider: provider,
		reader:   reader,
		writer:   writer,
		logger:   logger,
		now:      time.Now,
	}
}

// Generate читает выгрузку src, строит отчет и записывает его в dst.
// Если таблица ожидаемых часов недоступна, отчет строится с нулевыми ожидаемыми значениями.
func (s *ReportService) Generate(ctx context.Context, src, dst string) (*models.Report, error) {
	runID := uuid.NewString()
	log := s.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"source": src,
	})
	log.Info("Generating report")

	table, err := s.reader.ReadTable(src)
	if err != nil {
		log.WithError(err).Error("Failed to read source")
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}

	report, err := s.Build(ctx, table, log)
	if err != nil {
		return nil, err
	}
	report.RunID = runID

	if err := s.writer.WriteReport(report, dst); err != nil {
		log.WithError(err).Error("Failed to write report")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"destination": dst,
		"employees":   len(report.Summary),
		"rows":        len(report.Detail),
		"degraded":    report.Degraded(),
	}).Info("Report generated")

	return report, nil
}

// Build выполняет один проход: нормализация -> группировка -> сверка -> сборка
func (s *ReportService) Build(ctx context.Context, table *models.RawTable, log *logrus.Entry) (*models.Report, error) {
	punches, stats, err := NewPunchNormalizer(log).Normalize(table)
	if err != nil {
		return nil, err
	}
	ids := BuildEmployeeIDMap(table)
	sessions := GroupSessions(punches)

	expected, expectedErr := s.expectedHours(ctx, log)

	rows := NewReconciler(expected, ids, log).Reconcile(sessions)
	report := AssembleReport(rows)
	report.RowsRead = stats.RowsRead
	report.RowsDropped = stats.RowsDropped
	report.ExpectedHoursErr = expectedErr
	report.GeneratedAt = s.now()

	return report, nil
}

func (s *ReportService) expectedHours(ctx context.Context, log *logrus.Entry) (models.ExpectedHoursTable, error) {
	if s.provider == nil {
		log.Warn("No expected hours provider, expected hours are 0")
		return nil, models.ErrDataUnavailable
	}

	table, err := s.provider.ExpectedHours(ctx)
	if err != nil {
		if !IsDataUnavailable(err) {
			err = fmt.Errorf("%w: %w", models.ErrDataUnavailable, err)
		}
		log.WithError(err).Warn("Expected hours unavailable, expected hours are 0")
		return nil, err
	}
	return table, nil
}
