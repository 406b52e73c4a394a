package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNumeroFacture(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{
			name: "reference example",
			at:   time.Date(2025, 4, 24, 9, 5, 0, 0, time.Local),
			want: "FQ/2025/04/24/09:05",
		},
		{
			name: "single digit fields are zero padded",
			at:   time.Date(2025, 1, 2, 8, 7, 0, 0, time.Local),
			want: "FQ/2025/01/02/08:07",
		},
		{
			name: "seconds are ignored",
			at:   time.Date(2025, 12, 31, 23, 59, 59, 0, time.Local),
			want: "FQ/2025/12/31/23:59",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NumeroFacture(tt.at))
		})
	}
}

func TestNumeroFactureSameMinute(t *testing.T) {
	// Two saves within the same minute share a number; uniqueness is not
	// enforced at this level.
	a := time.Date(2025, 4, 24, 9, 5, 10, 0, time.Local)
	b := time.Date(2025, 4, 24, 9, 5, 50, 0, time.Local)
	assert.Equal(t, NumeroFacture(a), NumeroFacture(b))
}

func TestNumeroBordereau(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{
			name: "mid year",
			at:   time.Date(2025, 4, 24, 0, 0, 0, 0, time.Local), // ISO week 17, day 114
			want: "M-2025-04-17-114",
		},
		{
			name: "early january pads week and day",
			at:   time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local), // ISO week 2, day 6
			want: "M-2025-01-02-006",
		},
		{
			name: "end of year day of year is three digits",
			at:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local), // leap year, day 366
			want: "M-2024-12-01-366",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NumeroBordereau(tt.at))
		})
	}
}
