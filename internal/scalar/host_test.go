package scalar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateParts(t *testing.T) {
	h := Host{}
	tests := []struct {
		raw              string
		year, month, day int
	}{
		{"2024-01-05", 2024, 1, 5},
		{"1/5/2024", 2024, 1, 5},
		{"12/31/1999", 1999, 12, 31},
		{"2024-03-09 14:30:00", 2024, 3, 9},
		{"3/9/2024 2:30 PM", 2024, 3, 9},
		{"not a date", 0, 0, 0},
		{"", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			y, m, d := h.DateParts(tt.raw)
			assert.Equal(t, []int{tt.year, tt.month, tt.day}, []int{y, m, d})
		})
	}
}

func TestTimeParts(t *testing.T) {
	h := Host{}
	tests := []struct {
		raw    string
		hour   string
		minute int
		second int
	}{
		{"14:30:15", "14", 30, 15},
		{"3:04 PM", "3 PM", 4, 0},
		{"3:04:05pm", "3 pm", 4, 5},
		{"2024-03-09 09:05:07", "09", 5, 7},
		{"nothing", "0", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			hour, minute, second := h.TimeParts(tt.raw)
			assert.Equal(t, tt.hour, hour)
			assert.Equal(t, tt.minute, minute)
			assert.Equal(t, tt.second, second)
		})
	}
}

func TestHour24(t *testing.T) {
	assert.Equal(t, 15, Hour24("3 PM"))
	assert.Equal(t, 15, Hour24("3 p.m."))
	assert.Equal(t, 12, Hour24("12 PM"))
	assert.Equal(t, 3, Hour24("3 AM"))
	assert.Equal(t, 14, Hour24("14"))
	assert.Equal(t, 0, Hour24(""))
}

func TestCanonicalText(t *testing.T) {
	h := Host{}

	assert.Equal(t, "01/05/2024", h.Date("2024-01-05"))
	assert.Equal(t, "", h.Date("garbage"))

	assert.Equal(t, "15:04:00", h.Time("3:04 pm"))
	assert.Equal(t, "09:30:00", h.Time("09:30"))
	assert.Equal(t, "", h.Time("garbage"))

	assert.Equal(t, "01/05/2024 13:45:00", h.Timestamp("2024-01-05 13:45:00"))
	assert.Equal(t, "", h.Timestamp(""))
}

func TestNumber(t *testing.T) {
	h := Host{}
	tests := []struct {
		raw  string
		want string
	}{
		{"42", "42"},
		{" 3.50 ", "3.5"},
		{"-7", "-7"},
		{"1e3", "1000"},
		{"$1,234.50", "1234.5"},
		{"9007199254740993", "9007199254740993"},
		{"12345678901234567890", "12345678901234567890"},
		{"+007.250", "7.25"},
		{"-0.0", "0"},
		{"1e400", NullNumber},
		{"-1e400", NullNumber},
		{"abc", NullNumber},
		{"", NullNumber},
		{"NaN", NullNumber},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Number(tt.raw))
		})
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "2024-01-05", FormatDate(2024, 1, 5))
	assert.Equal(t, "0000-00-00", FormatDate(0, 0, 0))
	assert.Equal(t, "07:08:09", FormatClock(7, 8, 9))
	assert.Equal(t, "23:59:00", FormatClock(23, 59, 0))
}
