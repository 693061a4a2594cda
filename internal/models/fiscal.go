package models

import "time"

// FiscalYear represents an accounting year row.
type FiscalYear struct {
	YearID    string    `db:"year_id"`
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    string    `db:"status"`
	AuditFields
}

// FiscalPeriod represents a subdivision of a fiscal year.
type FiscalPeriod struct {
	PeriodID  string    `db:"period_id"`
	YearID    string    `db:"year_id"`
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    string    `db:"status"`
	AuditFields
}
