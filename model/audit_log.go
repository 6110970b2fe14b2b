package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog represents a persisted administrative or security relevant action
type AuditLog struct {
	gorm.Model
	EventType  string `json:"event_type" gorm:"column:event_type;type:varchar(64);index"`
	ActorEmail string `json:"actor_email" gorm:"column:actor_email;type:varchar(191);index"`
	IP         string `json:"ip" gorm:"column:ip;type:varchar(45)"`
	// Location stores city and country in the format "City/Country" when available.
	Location  string         `json:"location" gorm:"column:location;type:varchar(255)"`
	UserAgent string         `json:"user_agent" gorm:"column:user_agent;type:varchar(512)"`
	Message   string         `json:"message" gorm:"column:message;type:text"`
	Details   datatypes.JSON `json:"details" gorm:"column:details;type:json"`
}
