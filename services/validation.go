package services

import (
	"time"

	"venus-recipe/apperrors"
	"venus-recipe/models"
)

const maxWeekdays = 10

// GenerationRequest asks for schedules for some campuses over a date range
type GenerationRequest struct {
	Campuses  []uint `json:"campuses"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Weekdays lists the Monday-Friday dates of [start, end]
func Weekdays(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, d)
		}
	}
	return days
}

// ValidateGenerationRequest reports every violated rule at once. A malformed
// or inverted date range stops the remaining date checks.
func ValidateGenerationRequest(req GenerationRequest) error {
	var violations []string

	if len(req.Campuses) == 0 {
		violations = append(violations, "At least one campus must be selected")
	}
	if req.StartDate == "" || req.EndDate == "" {
		violations = append(violations, "Start date and end date are required")
	}

	start, errStart := time.Parse(models.DateLayout, req.StartDate)
	end, errEnd := time.Parse(models.DateLayout, req.EndDate)
	switch {
	case errStart != nil || errEnd != nil:
		violations = append(violations, "Invalid date format. Please use YYYY-MM-DD format.")
	case !end.After(start):
		violations = append(violations, "End date must be after start date")
	default:
		n := len(Weekdays(start, end))
		if n == 0 {
			violations = append(violations, "Date range must include at least one weekday (Monday-Friday)")
		}
		if n > maxWeekdays {
			violations = append(violations, "Date range cannot exceed 10 weekdays")
		}
	}

	if len(violations) > 0 {
		return apperrors.NewValidationError("Invalid generation request", violations...)
	}
	return nil
}
