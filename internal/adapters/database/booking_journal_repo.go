package database

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"allweather.app/internal/ports"
	"allweather.app/pkg/errors"
)

// BookingModel represents the database model for accepted bookings
type BookingModel struct {
	ID           uint   `gorm:"primaryKey"`
	BookingID    string `gorm:"uniqueIndex;size:32;not null"`
	Name         string `gorm:"not null"`
	Phone        string `gorm:"not null"`
	Address      string
	Email        string
	Date         string `gorm:"index;size:10;not null"`
	Locale       string `gorm:"size:8"`
	TemperatureC *float64
	Description  string
	WindSpeedMs  *float64
	WindRisk     string `gorm:"size:16"`
	Notified     string
	CreatedAt    time.Time `gorm:"index"`
}

func (BookingModel) TableName() string {
	return "bookings"
}

// BookingJournalRepository implements the BookingJournal port using GORM
type BookingJournalRepository struct {
	db *gorm.DB
}

func NewBookingJournalRepository(db *gorm.DB) *BookingJournalRepository {
	return &BookingJournalRepository{db: db}
}

// Append inserts an accepted booking. The record's ID and CreatedAt are
// filled from the stored row.
func (r *BookingJournalRepository) Append(ctx context.Context, record *ports.BookingRecord) error {
	if record == nil {
		return errors.NewValidationError("booking record cannot be nil")
	}
	if record.BookingID == "" {
		return errors.NewValidationError("booking ID cannot be empty")
	}

	model := recordToModel(record)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.NewDatabaseError("failed to append booking", err)
	}

	record.ID = model.ID
	record.CreatedAt = model.CreatedAt
	return nil
}

// Recent returns up to limit bookings, newest first.
func (r *BookingJournalRepository) Recent(ctx context.Context, limit int) ([]*ports.BookingRecord, error) {
	if limit <= 0 {
		return nil, errors.NewValidationError("limit must be positive")
	}

	var models []BookingModel
	result := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&models)
	if result.Error != nil {
		return nil, errors.NewDatabaseError("failed to list bookings", result.Error)
	}

	records := make([]*ports.BookingRecord, len(models))
	for i := range models {
		records[i] = modelToRecord(&models[i])
	}
	return records, nil
}

// Ping reports whether the underlying connection is usable.
func (r *BookingJournalRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.NewDatabaseError("failed to get database handle", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.NewDatabaseError("database ping failed", err)
	}
	return nil
}

func recordToModel(rec *ports.BookingRecord) *BookingModel {
	return &BookingModel{
		ID:           rec.ID,
		BookingID:    rec.BookingID,
		Name:         rec.Name,
		Phone:        rec.Phone,
		Address:      rec.Address,
		Email:        rec.Email,
		Date:         rec.Date,
		Locale:       rec.Locale,
		TemperatureC: rec.TemperatureC,
		Description:  rec.Description,
		WindSpeedMs:  rec.WindSpeedMs,
		WindRisk:     rec.WindRisk,
		Notified:     strings.Join(rec.Notified, ","),
		CreatedAt:    rec.CreatedAt,
	}
}

func modelToRecord(model *BookingModel) *ports.BookingRecord {
	var notified []string
	if model.Notified != "" {
		notified = strings.Split(model.Notified, ",")
	}
	return &ports.BookingRecord{
		ID:           model.ID,
		BookingID:    model.BookingID,
		Name:         model.Name,
		Phone:        model.Phone,
		Address:      model.Address,
		Email:        model.Email,
		Date:         model.Date,
		Locale:       model.Locale,
		TemperatureC: model.TemperatureC,
		Description:  model.Description,
		WindSpeedMs:  model.WindSpeedMs,
		WindRisk:     model.WindRisk,
		Notified:     notified,
		CreatedAt:    model.CreatedAt,
	}
}
