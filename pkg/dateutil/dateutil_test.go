package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestAgeCalculation tests the age calculation function with various scenarios
func TestAgeCalculation(t *testing.T) {
	tests := []struct {
		name        string
		birthDate   time.Time
		atDate      time.Time
		expectedAge int
		description string
	}{
		{
			name:        "Same month and day",
			birthDate:   time.Date(1965, 2, 25, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC),
			expectedAge: 60,
			description: "Exact birthday",
		},
		{
			name:        "Day before birthday",
			birthDate:   time.Date(1965, 2, 25, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC),
			expectedAge: 59,
			description: "One day before 60th birthday",
		},
		{
			name:        "Day after birthday",
			birthDate:   time.Date(1965, 2, 25, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 2, 26, 0, 0, 0, 0, time.UTC),
			expectedAge: 60,
			description: "One day after 60th birthday",
		},
		{
			name:        "Month before birthday",
			birthDate:   time.Date(1965, 2, 25, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC),
			expectedAge: 59,
			description: "Same day, month before birthday",
		},
		{
			name:        "Month after birthday",
			birthDate:   time.Date(1965, 2, 25, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC),
			expectedAge: 60,
			description: "Same day, month after birthday",
		},
		{
			name:        "Leap year birth, non-leap year check",
			birthDate:   time.Date(1964, 2, 29, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
			expectedAge: 60,
			description: "Born on leap day, checking on Feb 28",
		},
		{
			name:        "Leap year birth, leap year check",
			birthDate:   time.Date(1964, 2, 29, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			expectedAge: 60,
			description: "Born on leap day, checking on leap day",
		},
		{
			name:        "Late in the year",
			birthDate:   time.Date(1991, 2, 25, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
			expectedAge: 35,
			description: "Birthday already passed this year",
		},
		{
			name:        "Day before month-end birthday",
			birthDate:   time.Date(1988, 7, 31, 0, 0, 0, 0, time.UTC),
			atDate:      time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC),
			expectedAge: 37,
			description: "One day short of 38",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age := Age(tt.birthDate, tt.atDate)
			assert.Equal(t, tt.expectedAge, age,
				"%s: Expected age %d, got %d", tt.description, tt.expectedAge, age)
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 28, DaysInMonth(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 31, DaysInMonth(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 30, DaysInMonth(time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)))
}

func TestAddFractionalYears(t *testing.T) {
	base := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		years float64
		want  time.Time
	}{
		{"zero", 0, base},
		{"negative", -3, base},
		{"whole years", 12, time.Date(2038, 10, 14, 0, 0, 0, 0, time.UTC)},
		{"half year", 12.5, time.Date(2039, 4, 14, 0, 0, 0, 0, time.UTC)},
		{"month and a half", 0.125, time.Date(2026, 11, 29, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddFractionalYears(base, tt.years))
		})
	}

	// Calendar years, not 365-day blocks: leap days are absorbed.
	leap := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2031, 3, 1, 0, 0, 0, 0, time.UTC), AddFractionalYears(leap, 4))
}
