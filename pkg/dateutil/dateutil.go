// Package dateutil holds the calendar arithmetic used for projected dates and ages.
package dateutil

import (
	"math"
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// DaysInMonth returns the number of days in the month containing date
func DaysInMonth(date time.Time) int {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	return first.AddDate(0, 1, -1).Day()
}

// AddFractionalYears moves a date forward by a fractional number of years
// using calendar arithmetic: whole years, then whole months, then the
// remaining fraction of a month as days of the month being entered.
// Non-positive spans return the date unchanged.
func AddFractionalYears(date time.Time, years float64) time.Time {
	if years <= 0 || math.IsNaN(years) || math.IsInf(years, 0) {
		return date
	}
	wholeYears := math.Floor(years)
	result := date.AddDate(int(wholeYears), 0, 0)

	months := (years - wholeYears) * 12
	wholeMonths := math.Floor(months)
	result = result.AddDate(0, int(wholeMonths), 0)

	days := math.Round((months - wholeMonths) * float64(DaysInMonth(result)))
	return result.AddDate(0, 0, int(days))
}
