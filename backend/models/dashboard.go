package models

import "time"

// DashboardEntry mirrors the legacy dashboard_data collection. The table is
// migrated and indexed but no current flow writes to it.
type DashboardEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	Payload   string    `json:"payload"`
}
