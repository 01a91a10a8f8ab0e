package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"checador-report/internal/models"
	"checador-report/internal/repository"
	"checador-report/pkg/nocodb"
	"checador-report/pkg/weekdays"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/sirupsen/logrus"
)

// ErrRemoteDisabled - удаленный источник не настроен или отключен (--offline)
var ErrRemoteDisabled = errors.New("remote expected hours source is disabled")

// ExpectedHoursProvider отдает таблицу ожидаемых секунд по сотрудникам и дням недели
type ExpectedHoursProvider interface {
	ExpectedHours(ctx context.Context) (models.ExpectedHoursTable, error)
}

// StaticProvider - таблица в памяти
type StaticProvider struct {
	Table models.ExpectedHoursTable
}

func (p StaticProvider) ExpectedHours(context.Context) (models.ExpectedHoursTable, error) {
	if p.Table == nil {
		return nil, models.ErrDataUnavailable
	}
	return p.Table, nil
}

// RecordsSource - удаленная таблица с записями (NocoDB)
type RecordsSource interface {
	ListRecords(ctx context.Context) ([]nocodb.Record, error)
	Source() string
}

// RemoteProvider читает таблицу из API
type RemoteProvider struct {
	source RecordsSource
	logger *logrus.Logger
}

func NewRemoteProvider(source RecordsSource, logger *logrus.Logger) *RemoteProvider {
	return &RemoteProvider{source: source, logger: logger}
}

func (p *RemoteProvider) ExpectedHours(ctx context.Context) (models.ExpectedHoursTable, error) {
	records, err := p.source.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	table, err := ExpectedHoursFromRecords(records)
	if err != nil {
		return nil, err
	}

	p.logger.WithFields(logrus.Fields{
		"records":   len(records),
		"employees": len(table),
		"source":    p.source.Source(),
	}).Info("Expected hours downloaded")

	return table, nil
}

// ExpectedHoursFromRecords разбирает записи API: колонка сотрудника и колонки дней недели
// в любом из вариантов ("# L", "#L", "L", "Lunes"). Для повторяющегося сотрудника берется первая запись.
func ExpectedHoursFromRecords(records []nocodb.Record) (models.ExpectedHoursTable, error) {
	table := make(models.ExpectedHoursTable)
	if len(records) == 0 {
		return table, nil
	}

	keys := recordKeys(records)
	employeeKey, ok := findEmployeeKey(keys)
	if !ok {
		return nil, fmt.Errorf("no employee column among %v", keys)
	}

	// Если несколько колонок относятся к одному дню, берется вариант с наименьшим рангом:
	// "# L", затем "#L", "L" и "Lunes"
	dayKeys := make(map[string]string)
	for _, key := range keys {
		day, ok := weekdays.ResolveColumn(key)
		if !ok {
			continue
		}
		if current, exists := dayKeys[day]; !exists || weekdays.ColumnRank(key) < weekdays.ColumnRank(current) {
			dayKeys[day] = key
		}
	}

	for _, record := range records {
		id, ok := toInt(record[employeeKey])
		if !ok {
			continue
		}
		if _, seen := table[id]; seen {
			continue
		}

		days := make(map[string]float64, len(dayKeys))
		for day, key := range dayKeys {
			if seconds, ok := toFloat(record[key]); ok {
				days[day] = seconds
			}
		}
		table[id] = days
	}
	return table, nil
}

func recordKeys(records []nocodb.Record) []string {
	set := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			set[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// findEmployeeKey: "Employee", иначе первая колонка с "employee", иначе первая с "id"
func findEmployeeKey(keys []string) (string, bool) {
	for _, k := range keys {
		if k == models.ColumnEmployeeID {
			return k, true
		}
	}
	for _, k := range keys {
		if strings.Contains(strings.ToLower(k), "employee") {
			return k, true
		}
	}
	for _, k := range keys {
		if strings.Contains(strings.ToLower(k), "id") {
			return k, true
		}
	}
	return "", false
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toInt(v any) (int64, bool) {
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// HashTable считает хэш содержимого таблицы, не зависящий от порядка
func HashTable(table models.ExpectedHoursTable) (string, error) {
	h, err := hashstructure.Hash(table, hashstructure.FormatV2, nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h), nil
}

// SnapshotProvider обновляет локальный снимок из API, а при недоступности API отдает снимок.
// remote может быть nil - тогда используется только снимок.
type SnapshotProvider struct {
	remote ExpectedHoursProvider
	repo   repository.ExpectedHoursRepository
	source string
	logger *logrus.Logger
}

func NewSnapshotProvider(
	remote ExpectedHoursProvider,
	repo repository.ExpectedHoursRepository,
	source string,
	logger *logrus.Logger,
) *SnapshotProvider {
	return &SnapshotProvider{
		remote: remote,
		repo:   repo,
		source: source,
		logger: logger,
	}
}

func (p *SnapshotProvider) ExpectedHours(ctx context.Context) (models.ExpectedHoursTable, error) {
	var remoteErr error
	if p.remote != nil {
		table, err := p.remote.ExpectedHours(ctx)
		if err == nil {
			// Ошибка записи снимка не мешает отчету
			if _, err := p.storeIfChanged(table); err != nil {
				p.logger.WithError(err).Error("Failed to store expected hours snapshot")
			}
			return table, nil
		}
		remoteErr = err
		p.logger.WithError(err).Warn("Failed to check expected hours updates, using local snapshot")
	}

	snapshot, err := p.repo.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrDataUnavailable, err)
	}
	if snapshot == nil {
		if remoteErr != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrDataUnavailable, remoteErr)
		}
		return nil, fmt.Errorf("%w: no local snapshot", models.ErrDataUnavailable)
	}

	table, err := p.repo.LoadTable()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrDataUnavailable, err)
	}

	p.logger.WithFields(logrus.Fields{
		"last_update": snapshot.LastUpdate.Format("2006-01-02 15:04:05"),
		"employees":   len(table),
	}).Info("Using local expected hours snapshot")

	return table, nil
}

// Refresh принудительно запрашивает API и обновляет снимок, если данные изменились
func (p *SnapshotProvider) Refresh(ctx context.Context) (*models.ExpectedHoursSnapshot, bool, error) {
	if p.remote == nil {
		return nil, false, ErrRemoteDisabled
	}

	table, err := p.remote.ExpectedHours(ctx)
	if err != nil {
		return nil, false, err
	}

	changed, err := p.storeIfChanged(table)
	if err != nil {
		return nil, false, err
	}

	snapshot, err := p.repo.GetSnapshot()
	if err != nil {
		return nil, false, err
	}
	return snapshot, changed, nil
}

// Snapshot возвращает метаданные сохраненного снимка или nil
func (p *SnapshotProvider) Snapshot() (*models.ExpectedHoursSnapshot, error) {
	return p.repo.GetSnapshot()
}

// storeIfChanged сохраняет снимок, если хэш изменился
func (p *SnapshotProvider) storeIfChanged(table models.ExpectedHoursTable) (bool, error) {
	hash, err := HashTable(table)
	if err != nil {
		return false, fmt.Errorf("hashing expected hours: %w", err)
	}

	snapshot, err := p.repo.GetSnapshot()
	if err != nil {
		return false, err
	}
	if snapshot != nil && snapshot.DataHash == hash {
		p.logger.WithField("hash", hash).Debug("Expected hours unchanged")
		return false, nil
	}

	if _, err := p.repo.ReplaceSnapshot(table, hash, p.source); err != nil {
		return false, err
	}

	p.logger.WithFields(logrus.Fields{
		"hash":      hash,
		"employees": len(table),
	}).Info("Expected hours snapshot updated")

	return true, nil
}

// IsDataUnavailable проверяет, что провайдер не смог отдать данные
func IsDataUnavailable(err error) bool {
	return errors.Is(err, models.ErrDataUnavailable)
}
