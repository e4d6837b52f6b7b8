package models

import "time"

// Traffic is a daily visit counter (PostgreSQL).
type Traffic struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Date      time.Time `json:"date" gorm:"uniqueIndex"`
	Visits    int64     `json:"visits" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserActivity is a periodic sample of active-user counts (PostgreSQL),
// written by the background sampling job.
type UserActivity struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Date        time.Time `json:"date" gorm:"index"`
	ActiveUsers int64     `json:"activeUsers" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
}
