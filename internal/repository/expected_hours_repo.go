package repository

import (
	"errors"
	"time"

	"checador-report/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const snapshotID = 1

type ExpectedHoursRepository interface {
	ReplaceSnapshot(table models.ExpectedHoursTable, dataHash, source string) (*models.ExpectedHoursSnapshot, error)
	GetSnapshot() (*models.ExpectedHoursSnapshot, error)
	LoadTable() (models.ExpectedHoursTable, error)
}

type GormExpectedHoursRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormExpectedHoursRepository(db *gorm.DB, logger *logrus.Logger) (*GormExpectedHoursRepository, error) {
	// Автомиграция
	if err := db.AutoMigrate(&models.ExpectedHoursRecord{}, &models.ExpectedHoursSnapshot{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate expected hours tables")
		return nil, err
	}

	logger.Info("Expected hours repository initialized")

	return &GormExpectedHoursRepository{
		db:     db,
		logger: logger,
	}, nil
}

// ReplaceSnapshot заменяет локальный снимок целиком в одной транзакции
func (r *GormExpectedHoursRepository) ReplaceSnapshot(table models.ExpectedHoursTable, dataHash, source string) (*models.ExpectedHoursSnapshot, error) {
	records := table.Records()
	snapshot := &models.ExpectedHoursSnapshot{
		ID:         snapshotID,
		DataHash:   dataHash,
		Employees:  len(table),
		Rows:       len(records),
		Source:     source,
		LastUpdate: time.Now(),
	}

	r.logger.WithFields(logrus.Fields{
		"employees": snapshot.Employees,
		"rows":      snapshot.Rows,
		"hash":      dataHash,
	}).Info("Replacing expected hours snapshot")

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ExpectedHoursRecord{}).Error; err != nil {
			return err
		}
		if len(records) > 0 {
			if err := tx.CreateInBatches(records, 500).Error; err != nil {
				return err
			}
		}
		return tx.Save(snapshot).Error
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to replace expected hours snapshot")
		return nil, err
	}

	r.logger.WithField("hash", dataHash).Info("Expected hours snapshot saved")
	return snapshot, nil
}

// GetSnapshot возвращает метаданные снимка или nil, если снимка еще нет
func (r *GormExpectedHoursRepository) GetSnapshot() (*models.ExpectedHoursSnapshot, error) {
	var snapshot models.ExpectedHoursSnapshot
	result := r.db.First(&snapshot, snapshotID)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.Debug("Expected hours snapshot not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get expected hours snapshot")
		return nil, result.Error
	}

	return &snapshot, nil
}

// LoadTable читает таблицу ожидаемых часов из снимка
func (r *GormExpectedHoursRepository) LoadTable() (models.ExpectedHoursTable, error) {
	var records []models.ExpectedHoursRecord
	result := r.db.Order("employee_id ASC, weekday ASC").Find(&records)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to load expected hours")
		return nil, result.Error
	}

	r.logger.WithField("count", len(records)).Debug("Loaded expected hours records")
	return models.TableFromRecords(records), nil
}
