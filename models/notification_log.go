// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationLog records every schedule SMS sent to a barber.
type NotificationLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	BarberID     int64     `gorm:"index;not null"`
	Phone        string    `gorm:"type:varchar(32)"`
	ScheduleDate string    `gorm:"type:varchar(10);index"`
	Appointments int
	Message      string `gorm:"type:text"`
	Status       string `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string `gorm:"type:text"`
	ProviderSID  string `gorm:"type:varchar(64)"`
	SentAt       time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
