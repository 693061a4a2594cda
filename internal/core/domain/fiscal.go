package domain

import "time"

// YearStatus is the posting state of a fiscal year or period.
type YearStatus string

const (
	YearOpen   YearStatus = "OPEN"
	YearClosed YearStatus = "CLOSED"
)

// FiscalYear is a named contiguous date range controlling whether dated
// entries may be created, posted or reversed. End dates are inclusive.
// Years never overlap.
type FiscalYear struct {
	YearID    string     `json:"yearID"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"startDate"`
	EndDate   time.Time  `json:"endDate"`
	Status    YearStatus `json:"status"`
	AuditFields
}

// Contains reports whether the date falls inside the year, end inclusive.
func (y FiscalYear) Contains(date time.Time) bool {
	return !date.Before(y.StartDate) && !date.After(y.EndDate)
}

// FiscalPeriod is an optional subdivision of a fiscal year. When periods
// exist, the period's status overrides the year's for posting checks.
type FiscalPeriod struct {
	PeriodID  string     `json:"periodID"`
	YearID    string     `json:"yearID"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"startDate"`
	EndDate   time.Time  `json:"endDate"`
	Status    YearStatus `json:"status"`
	AuditFields
}

// Contains reports whether the date falls inside the period, end inclusive.
func (p FiscalPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
