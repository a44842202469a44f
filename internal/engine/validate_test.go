package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrgoksal/Chilliwili/internal/domain"
)

func TestValidate_OperatingHours(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		name       string
		startHour  int
		duration   int
		wantOK     bool
		wantReason RejectReason
	}{
		{name: "first slot", startHour: 10, duration: 1, wantOK: true},
		{name: "before opening", startHour: 9, duration: 1, wantReason: ReasonOutsideOperatingHours},
		{name: "at closing", startHour: 22, duration: 1, wantReason: ReasonOutsideOperatingHours},
		{name: "after closing", startHour: 23, duration: 1, wantReason: ReasonOutsideOperatingHours},
		// Граница закрытия: последний час работает, но не длиннее
		{name: "last hour single", startHour: 21, duration: 1, wantOK: true},
		{name: "last hour too long", startHour: 21, duration: 2, wantReason: ReasonExceedsClosingTime},
		{name: "long booking to close", startHour: 10, duration: 12, wantOK: true},
		{name: "long booking past close", startHour: 11, duration: 12, wantReason: ReasonExceedsClosingTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Validate(tt.startHour, tt.duration, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, res.OK)
			if !tt.wantOK {
				assert.Equal(t, tt.wantReason, res.Reason)
				assert.NotEmpty(t, res.Message)
			}
		})
	}
}

func TestValidate_SameDayConflicts(t *testing.T) {
	e := testEngine(t)
	sameDay := []*domain.Booking{testBooking(t, 14, 2)} // Занято 14-15, уборка в 16

	tests := []struct {
		name        string
		startHour   int
		duration    int
		wantOK      bool
		wantMessage string
	}{
		{name: "direct overlap at start", startHour: 14, duration: 1, wantMessage: msgDirectOverlap},
		{name: "direct overlap inside", startHour: 15, duration: 2, wantMessage: msgDirectOverlap},
		{name: "overlap from before", startHour: 13, duration: 2, wantMessage: msgDirectOverlap},
		{name: "cleanup buffer hour", startHour: 16, duration: 1, wantMessage: msgCleanupAfter},
		{name: "right after buffer", startHour: 17, duration: 2, wantOK: true},
		{name: "ends right at start", startHour: 12, duration: 2, wantOK: true},
		{name: "morning free", startHour: 10, duration: 2, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Validate(tt.startHour, tt.duration, sameDay, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, res.OK)
			if !tt.wantOK {
				assert.Equal(t, ReasonSlotTaken, res.Reason)
				assert.Equal(t, tt.wantMessage, res.Message)
			}
		})
	}
}

func TestValidate_SpilloverConflicts(t *testing.T) {
	e, err := New(0, 24)
	require.NoError(t, err)
	prevDay := []*domain.Booking{testBooking(t, 23, 4)} // Хвост 00-02, уборка в 03

	tests := []struct {
		name        string
		startHour   int
		duration    int
		wantOK      bool
		wantMessage string
	}{
		{name: "inside spillover", startHour: 1, duration: 1, wantMessage: msgSpilloverTaken},
		{name: "spillover cleanup hour", startHour: 3, duration: 2, wantMessage: msgSpilloverCleanup},
		{name: "after cleanup", startHour: 4, duration: 2, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Validate(tt.startHour, tt.duration, nil, prevDay)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, res.OK)
			if !tt.wantOK {
				assert.Equal(t, ReasonSpilloverConflict, res.Reason)
				assert.Equal(t, tt.wantMessage, res.Message)
			}
		})
	}
}

func TestValidate_CancelledBookingsDoNotBlock(t *testing.T) {
	e := testEngine(t)
	cancelled := testBooking(t, 14, 2)
	cancelled.Status = domain.StatusCancelled

	res, err := e.Validate(14, 2, []*domain.Booking{cancelled}, nil)
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestValidate_PrevDayWithoutSpilloverDoesNotBlock(t *testing.T) {
	e := testEngine(t)
	prevDay := []*domain.Booking{testBooking(t, 20, 2)}

	res, err := e.Validate(10, 2, nil, prevDay)
	require.NoError(t, err)
	assert.True(t, res.OK)
}
