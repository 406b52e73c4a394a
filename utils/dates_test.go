package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2025-04-24")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 4, 24, 0, 0, 0, 0, time.UTC), d)

	d, ok = ParseDate("24/04/2025")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 4, 24, 0, 0, 0, 0, time.UTC), d)

	_, ok = ParseDate("24-04-2025")
	assert.False(t, ok)
	_, ok = ParseDate("")
	assert.False(t, ok)
}

func TestParseDateDefault(t *testing.T) {
	def := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	assert.Equal(t, def, ParseDateDefault("", def))
	assert.Equal(t, def, ParseDateDefault("not a date", def))

	d := ParseDateDefault("2025-04-24", def)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.April, d.Month())
	assert.Equal(t, 24, d.Day())
}

func TestStartOfWeek(t *testing.T) {
	monday := time.Date(2025, 4, 21, 0, 0, 0, 0, time.Local)

	// Wednesday and Sunday of the same week both resolve to that Monday.
	wednesday := time.Date(2025, 4, 23, 0, 0, 0, 0, time.Local)
	sunday := time.Date(2025, 4, 27, 0, 0, 0, 0, time.Local)

	assert.Equal(t, monday, StartOfWeek(monday))
	assert.Equal(t, monday, StartOfWeek(wednesday))
	assert.Equal(t, monday, StartOfWeek(sunday))
}
