package repositories

import (
	"time"

	"github.com/campusvibes/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnalyticsRepository defines the interface for the admin-analytics time
// series kept in PostgreSQL.
type AnalyticsRepository interface {
	RecordVisit() (*models.Traffic, error)
	TrafficSince(since time.Time) ([]models.Traffic, error)
	RecordActivity(activeUsers int64) error
	ActivitySince(since time.Time) ([]models.UserActivity, error)
}

type postgresAnalyticsRepository struct {
	db *gorm.DB
}

// NewPostgresAnalyticsRepository creates the analytics repository.
func NewPostgresAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &postgresAnalyticsRepository{db: db}
}

// RecordVisit increments today's visit counter, creating the row on first
// visit of the day. The upsert keeps concurrent visits from losing counts.
func (r *postgresAnalyticsRepository) RecordVisit() (*models.Traffic, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	traffic := models.Traffic{Date: today, Visits: 1}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"visits": gorm.Expr("traffics.visits + 1")}),
	}).Create(&traffic).Error
	if err != nil {
		return nil, err
	}

	if err := r.db.Where("date = ?", today).First(&traffic).Error; err != nil {
		return nil, err
	}
	return &traffic, nil
}

// TrafficSince retrieves daily visit counts from the given date onward.
func (r *postgresAnalyticsRepository) TrafficSince(since time.Time) ([]models.Traffic, error) {
	var traffic []models.Traffic
	err := r.db.Where("date >= ?", since).Order("date ASC").Find(&traffic).Error
	return traffic, err
}

// RecordActivity stores one active-user sample.
func (r *postgresAnalyticsRepository) RecordActivity(activeUsers int64) error {
	return r.db.Create(&models.UserActivity{
		Date:        time.Now(),
		ActiveUsers: activeUsers,
	}).Error
}

// ActivitySince retrieves active-user samples from the given date onward.
func (r *postgresAnalyticsRepository) ActivitySince(since time.Time) ([]models.UserActivity, error) {
	var activity []models.UserActivity
	err := r.db.Where("date >= ?", since).Order("date ASC").Find(&activity).Error
	return activity, err
}
