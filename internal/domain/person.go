package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Person struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PersonAstronaut is the read-facing join of a Person and its
// AstronautDetail. Detail fields are zero (and dates nil) when the person
// has no recorded duty yet.
type PersonAstronaut struct {
	PersonID         int64           `json:"personId"`
	Name             string          `json:"name"`
	CurrentRank      string          `json:"currentRank"`
	CurrentDutyTitle string          `json:"currentDutyTitle"`
	CareerStartDate  *datatypes.Date `json:"careerStartDate"`
	CareerEndDate    *datatypes.Date `json:"careerEndDate"`
}

// Project builds the read projection for p, using detail when present.
func Project(p *Person, detail *AstronautDetail) PersonAstronaut {
	view := PersonAstronaut{
		PersonID: p.ID,
		Name:     p.Name,
	}
	if detail != nil {
		start := detail.CareerStartDate
		view.CurrentRank = detail.CurrentRank
		view.CurrentDutyTitle = detail.CurrentDutyTitle
		view.CareerStartDate = &start
		if detail.CareerEndDate != nil {
			end := *detail.CareerEndDate
			view.CareerEndDate = &end
		}
	}
	return view
}
