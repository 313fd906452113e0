package ports

import (
	"context"
	"time"
)

// BookingRecord is an accepted booking as stored in the journal.
type BookingRecord struct {
	ID           uint
	BookingID    string
	Name         string
	Phone        string
	Address      string
	Email        string
	Date         string
	Locale       string
	TemperatureC *float64
	Description  string
	WindSpeedMs  *float64
	WindRisk     string
	Notified     []string
	CreatedAt    time.Time
}

// BookingJournal defines the contract for booking persistence
type BookingJournal interface {
	Append(ctx context.Context, record *BookingRecord) error
	Recent(ctx context.Context, limit int) ([]*BookingRecord, error)
}
