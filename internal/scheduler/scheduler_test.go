package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrgoksal/Chilliwili/internal/service/bookings/models"
	"github.com/mrgoksal/Chilliwili/pkg/ptr"
)

type fakeBookingService struct {
	bookings []models.BookingResponse
	err      error
}

func (f *fakeBookingService) GetByPeriod(_ context.Context, _ *models.GetPeriodBookingsRequest) (*models.BookingListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: f.bookings}, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeNotifier) NotifyAdmins(_ context.Context, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, text)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSendDailyDigest_WithBookings(t *testing.T) {
	svc := &fakeBookingService{
		bookings: []models.BookingResponse{
			{
				ID:            1,
				StartTime:     "15:00",
				DurationHours: 3,
				GuestCount:    6,
				TotalPrice:    4500,
				Status:        "confirmed",
				BookingName:   ptr.Ptr("Анна"),
			},
			{
				ID:            2,
				StartTime:     "19:00",
				DurationHours: 2,
				GuestCount:    4,
				TotalPrice:    2400,
				Status:        "pending",
			},
		},
	}
	notifier := &fakeNotifier{}

	s := New(svc, notifier, nopLogger{})
	s.sendDailyDigest()

	require.Len(t, notifier.messages, 1)
	msg := notifier.messages[0]

	assert.Contains(t, msg, "15:00")
	assert.Contains(t, msg, "Анна")
	assert.Contains(t, msg, "без имени")
	assert.Contains(t, msg, "2 брони, 10 гостей, 6900 ₽")
}

func TestSendDailyDigest_EmptyDay(t *testing.T) {
	notifier := &fakeNotifier{}

	s := New(&fakeBookingService{}, notifier, nopLogger{})
	s.sendDailyDigest()

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "броней нет")
}

func TestFormatDigest_Header(t *testing.T) {
	date := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	text := formatDigest(date, nil)

	assert.Contains(t, text, "20.11.2025")
}

func TestAddDailyDigest_InvalidSpec(t *testing.T) {
	s := New(&fakeBookingService{}, &fakeNotifier{}, nopLogger{})

	err := s.AddDailyDigest("not a cron spec")
	assert.Error(t, err)

	err = s.AddDailyDigest("0 9 * * *")
	assert.NoError(t, err)
}
