package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/suttley13/burn2earn-backend/models"
)

// ErrLogNotFound is returned by DeleteLog when no row matches the id.
var ErrLogNotFound = errors.New("log entry not found")

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// LogService owns every food_logs access. One instance is built at startup
// around the shared DB handle.
type LogService struct {
	db *gorm.DB
}

func NewLogService(db *gorm.DB) *LogService {
	return &LogService{db: db}
}

// CreateLog inserts one row. The store fills in ID and LoggedAt.
func (s *LogService) CreateLog(ctx context.Context, entry *models.FoodLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to insert food log: %w", err)
	}
	return nil
}

// DayWindow maps a YYYY-MM-DD date to the timestamp range of that logical
// day. The day resets at 3 AM CST (UTC-6), so the window runs from 09:00 UTC
// on the given date to 09:00 UTC the next day, inclusive at both ends; the
// mobile client sends the logical CST date with the cutoff already applied.
func DayWindow(date string) (time.Time, time.Time, error) {
	if !datePattern.MatchString(date) {
		return time.Time{}, time.Time{}, errors.New("date must be in YYYY-MM-DD format")
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("date must be in YYYY-MM-DD format")
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1), nil
}

// ListLogsForDay returns the user's entries for one logical day, oldest
// first. An empty day yields an empty slice, never nil.
func (s *LogService) ListLogsForDay(ctx context.Context, userID, date string) ([]models.FoodLog, error) {
	start, end, err := DayWindow(date)
	if err != nil {
		return nil, err
	}

	logs := make([]models.FoodLog, 0)
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at BETWEEN ? AND ?", userID, start, end).
		Order("logged_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query food logs: %w", err)
	}
	return logs, nil
}

// DeleteLog removes one row by id. A string that is not a uuid cannot match
// any row, so it reports ErrLogNotFound without touching the store.
func (s *LogService) DeleteLog(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrLogNotFound
	}

	res := s.db.WithContext(ctx).Where("id = ?", uid).Delete(&models.FoodLog{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete food log: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrLogNotFound
	}
	return nil
}
