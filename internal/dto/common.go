package dto

import (
	"fmt"
	"time"

	"github.com/fincore-app/fincore/internal/apperrors"
)

// DateLayout is the wire format for accounting dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD wire date into a UTC day-precision time.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, value)
	}
	return t, nil
}

// FormatDate renders a time as a YYYY-MM-DD wire date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ListParams carries (page, per_page) pagination for list endpoints.
type ListParams struct {
	Page    int `form:"page,default=1" binding:"omitempty,min=1"`
	PerPage int `form:"per_page,default=20" binding:"omitempty,min=1,max=200"`
}

// Normalize clamps pagination to sane defaults.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 20
	}
}
