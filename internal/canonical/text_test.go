package canonical

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "Acme", Text("  Acme \t\n"))
	assert.Equal(t, "", Text("   "))
	assert.Equal(t, "Caf\u00e9", Text("Cafe\u0301"))
}

func TestDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-01-15", "2025-01-15"},
		{" 2025-01-15 ", "2025-01-15"},
		{"2025-01-15T10:00:00Z", "2025-01-15"},
		{"2025-01-15T23:30:00-05:00", "2025-01-15"},
		{"2025-01-15T00:30:00.123+09:00", "2025-01-15"},
		{"2025-01-15 08:00:00", "2025-01-15"},
		{"", ""},
		{" next tuesday ", "next tuesday"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.in))
		})
	}
}

func TestDateOf(t *testing.T) {
	assert.Equal(t, "", DateOf(nil))
	assert.Equal(t, "", DateOf(&time.Time{}))

	d := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-09", DateOf(&d))
}

func TestCalendarDate(t *testing.T) {
	parsed, ok := ParseDate("2025-01-15T23:30:00-05:00")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), CalendarDate(parsed))

	_, ok = ParseDate("15/01/2025")
	assert.False(t, ok)
}
