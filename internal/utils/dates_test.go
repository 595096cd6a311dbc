package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayInput(t *testing.T) {
	tests := []struct {
		input string
		want  []int
	}{
		{"15", []int{15}},
		{" 7 ", []int{7}},
		{"6-10", []int{6, 7, 8, 9, 10}},
		{"1-1", []int{1}},
		{"31", []int{31}},
		{"0", nil},
		{"32", nil},
		{"10-6", nil},
		{"0-5", nil},
		{"5-32", nil},
		{"abc", nil},
		{"6-x", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDayInput(tt.input))
		})
	}
}

func TestWeekWindow(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	// Mercredi 12 mars 2025
	now := time.Date(2025, time.March, 12, 15, 30, 0, 0, loc)

	monday, sunday := WeekWindow(now, 0)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, loc), monday)
	assert.Equal(t, time.Date(2025, time.March, 16, 0, 0, 0, 0, loc), sunday)

	monday, sunday = WeekWindow(now, 1)
	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, loc), monday)
	assert.Equal(t, time.Date(2025, time.March, 9, 0, 0, 0, 0, loc), sunday)

	// Un dimanche reste dans la semaine entamée le lundi précédent
	sundayNow := time.Date(2025, time.March, 16, 10, 0, 0, 0, loc)
	monday, _ = WeekWindow(sundayNow, 0)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, loc), monday)
}

func TestWeekKey(t *testing.T) {
	loc := time.UTC
	// Le 1er janvier 2027 (vendredi) appartient à la semaine ISO 53 de 2026
	assert.Equal(t, "2026-W53", WeekKey(time.Date(2027, time.January, 1, 0, 0, 0, 0, loc)))
	assert.Equal(t, "2025-W11", WeekKey(time.Date(2025, time.March, 12, 0, 0, 0, 0, loc)))
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)

	got, err := ParseDate("05/03/2025", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 5, 0, 0, 0, 0, loc), got)

	_, err = ParseDate("2025-03-05", loc)
	assert.Error(t, err)
}
