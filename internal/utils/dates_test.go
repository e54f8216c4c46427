package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"calendar date", "2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339 utc", "2025-03-01T10:30:00Z", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), false},
		{"rfc3339 offset", "2025-03-01T10:30:00+02:00", time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC), false},
		{"padded", "  2025-03-01 ", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "next tuesday", time.Time{}, true},
		{"us format", "03/01/2025", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOptionalDate("2025-12-31")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2025, got.Year())

	_, err = ParseOptionalDate("31.12.2025")
	assert.Error(t, err)
}

func TestNormalizeList(t *testing.T) {
	assert.Equal(t, []string{"go", "react"}, NormalizeList([]string{" go ", "", "react", "  "}))
	assert.NotNil(t, NormalizeList(nil))
	assert.Empty(t, NormalizeList(nil))
}
