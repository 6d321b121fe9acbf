package domain

import (
	"time"

	"gorm.io/datatypes"
)

// AstronautDetail is the current-status projection of a person's career.
// There is at most one per person and it only exists once a duty has been
// recorded.
type AstronautDetail struct {
	ID               int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	PersonID         int64           `json:"personId" gorm:"uniqueIndex;not null"`
	CurrentRank      string          `json:"currentRank" gorm:"not null"`
	CurrentDutyTitle string          `json:"currentDutyTitle" gorm:"not null"`
	CareerStartDate  datatypes.Date  `json:"careerStartDate" gorm:"not null"`
	CareerEndDate    *datatypes.Date `json:"careerEndDate"`
	UpdatedAt        time.Time       `json:"-"`
}

// AstronautDuty is one row of the append-only duty history. A nil
// DutyEndDate marks the open (current) assignment.
type AstronautDuty struct {
	ID            int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	PersonID      int64           `json:"personId" gorm:"not null;index"`
	Rank          string          `json:"rank" gorm:"not null"`
	DutyTitle     string          `json:"dutyTitle" gorm:"not null"`
	DutyStartDate datatypes.Date  `json:"dutyStartDate" gorm:"not null"`
	DutyEndDate   *datatypes.Date `json:"dutyEndDate"`
}

func (d *AstronautDuty) IsOpen() bool {
	return d.DutyEndDate == nil
}

type DutyHistory struct {
	Person PersonAstronaut `json:"person"`
	Duties []AstronautDuty `json:"astronautDuties"`
}

// DateOf truncates t to its calendar date, stored as midnight UTC.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// DayBefore returns the calendar date of the day preceding t.
func DayBefore(t time.Time) datatypes.Date {
	return DateOf(t.AddDate(0, 0, -1))
}
