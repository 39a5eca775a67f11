package models

import "time"

// SessionRecord persists a browser session in PostgreSQL.
type SessionRecord struct {
	ID        string `gorm:"type:varchar(64);primaryKey"`
	UserID    int64  `gorm:"index;not null"`
	Role      string `gorm:"type:varchar(20);not null"`
	FullName  string `gorm:"not null"`
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index;not null"`
}

func (SessionRecord) TableName() string {
	return "sessions"
}
