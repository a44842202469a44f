package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "10:00"},
		{in: "00:00"},
		{in: "23:59"},
		{in: "24:00", wantErr: true},
		{in: "10:60", wantErr: true},
		{in: "10", wantErr: true},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.in, ts.String())
			}
		})
	}
}

func TestTimeStringHourAndMinute(t *testing.T) {
	ts := TimeString("15:30")

	hour, err := ts.Hour()
	require.NoError(t, err)
	assert.Equal(t, 15, hour)

	minute, err := ts.Minute()
	require.NoError(t, err)
	assert.Equal(t, 30, minute)
}

func TestTimeStringAddHours(t *testing.T) {
	ts := TimeString("22:00")

	res, nextDay, err := ts.AddHours(1)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:00"), res)
	assert.False(t, nextDay)

	res, nextDay, err = ts.AddHours(3)
	require.NoError(t, err)
	assert.Equal(t, TimeString("01:00"), res)
	assert.True(t, nextDay)
}

func TestTimeStringOrdering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("21:00").IsAfter("09:30"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("18:00"))
	assert.Equal(t, TimeString("18:00"), ts)

	require.NoError(t, ts.Scan([]byte("19:00")))
	assert.Equal(t, TimeString("19:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 11, 15, 20, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("20:30"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestNewTimeStringFromHour(t *testing.T) {
	ts, err := NewTimeStringFromHour(9)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:00"), ts)

	_, err = NewTimeStringFromHour(24)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
