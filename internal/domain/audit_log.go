package domain

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is one lifecycle event of an API request. All rows written for
// the same request share a RequestIdentifier.
type AuditLog struct {
	ID                int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestName       string         `json:"requestName" gorm:"not null;index"`
	RequestIdentifier string         `json:"requestIdentifier" gorm:"not null;index"`
	Message           string         `json:"message" gorm:"not null"`
	Props             datatypes.JSON `json:"props,omitempty" gorm:"type:jsonb"`
	Timestamp         time.Time      `json:"timestamp" gorm:"not null"`
	ElapsedMillis     *int64         `json:"elapsedMillis"`
}
