package service

import (
	"strings"
	"time"

	"github.com/dom/stargate-tracker/internal/config"
	"github.com/dom/stargate-tracker/internal/domain"
)

// RecordDutyInput contains the data for recording an astronaut duty
type RecordDutyInput struct {
	Name          string    `json:"name"`
	Rank          string    `json:"rank"`
	DutyTitle     string    `json:"dutyTitle"`
	DutyStartDate time.Time `json:"dutyStartDate"`
}

// blank reports whether s is empty once surrounding whitespace is removed.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func ValidateCreatePerson(name string) error {
	if blank(name) {
		return domain.Validationf("name is required")
	}
	return nil
}

func ValidateRenamePerson(currentName, newName string) error {
	if blank(currentName) {
		return domain.Validationf("current name is required")
	}
	if blank(newName) {
		return domain.Validationf("new name is required")
	}
	return nil
}

// ValidateRecordDuty checks the required fields and the duty start floor.
func ValidateRecordDuty(rules config.DutyRules, input RecordDutyInput) error {
	switch {
	case blank(input.Name):
		return domain.Validationf("name is required")
	case blank(input.Rank):
		return domain.Validationf("rank is required")
	case blank(input.DutyTitle):
		return domain.Validationf("duty title is required")
	case input.DutyStartDate.IsZero():
		return domain.Validationf("duty start date is required")
	case time.Time(domain.DateOf(input.DutyStartDate)).Before(rules.MinDutyStartDate):
		return domain.Validationf("duty start date must not be before %s", rules.MinDutyStartDate.Format("2006-01-02"))
	}
	return nil
}

func ValidateNameLookup(name string) error {
	if blank(name) {
		return domain.Validationf("name is required")
	}
	return nil
}
