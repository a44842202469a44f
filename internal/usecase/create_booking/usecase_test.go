package create_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	"github.com/mrgoksal/Chilliwili/internal/engine"
	"github.com/mrgoksal/Chilliwili/pkg/ptr"
	"github.com/mrgoksal/Chilliwili/pkg/types"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[string][]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, bookings: make(map[string][]*domain.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt

	key := b.Date.Format(domain.DateFormat)
	r.bookings[key] = append(r.bookings[key], b)
	return b, nil
}

func (r *fakeBookingRepo) GetActiveByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := make([]*domain.Booking, 0)
	for _, b := range r.bookings[date.Format(domain.DateFormat)] {
		if b.Status != domain.StatusCancelled {
			active = append(active, b)
		}
	}
	return active, nil
}

type fakeCustomerRepo struct {
	nextID    int64
	customers []*domain.Customer
}

func (r *fakeCustomerRepo) FindOrCreate(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	for _, existing := range r.customers {
		if c.TelegramID != nil && existing.TelegramID != nil && *c.TelegramID == *existing.TelegramID {
			return existing, nil
		}
		if c.TelegramID == nil && c.Phone != "" && existing.Phone == c.Phone {
			return existing, nil
		}
	}

	r.nextID++
	c.ID = r.nextID
	r.customers = append(r.customers, c)
	return c, nil
}

type fakePricingRepo struct {
	rules    []*domain.PriceRule
	defaults *domain.DefaultPricing
}

func (r *fakePricingRepo) GetActiveRules(_ context.Context) ([]*domain.PriceRule, error) {
	return r.rules, nil
}

func (r *fakePricingRepo) GetDefaults(_ context.Context) (*domain.DefaultPricing, error) {
	return r.defaults, nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeNotifier отдает сообщения через канал, потому что уведомление
// уходит из горутины после коммита
type fakeNotifier struct {
	messages chan string
}

func (n *fakeNotifier) NotifyAdmins(_ context.Context, text string) {
	n.messages <- text
}

func (n *fakeNotifier) wait(t *testing.T) string {
	t.Helper()
	select {
	case msg := <-n.messages:
		return msg
	case <-time.After(time.Second):
		t.Fatal("admin notification was not sent")
		return ""
	}
}

type fixedTime struct {
	t time.Time
}

func (p *fixedTime) Now() time.Time { return p.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type testEnv struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	notifier    *fakeNotifier
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	eng, err := engine.New(domain.DefaultOpenHour, domain.DefaultCloseHour)
	require.NoError(t, err)

	bookingRepo := newFakeBookingRepo()
	notifier := &fakeNotifier{messages: make(chan string, 8)}

	uc := NewUseCase(
		bookingRepo,
		&fakeCustomerRepo{},
		&fakePricingRepo{
			defaults: &domain.DefaultPricing{
				PricePerHour:       800,
				PricePerExtraGuest: 500,
				MaxGuestsIncluded:  4,
			},
		},
		eng,
		&fakeTxManager{},
		notifier,
		nil,
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{t: now}

	return &testEnv{uc: uc, bookingRepo: bookingRepo, notifier: notifier}
}

func validRequest(date time.Time) *Request {
	return &Request{
		CustomerName:  "Айгуль",
		CustomerPhone: "+79991234567",
		Date:          date,
		StartHour:     15,
		DurationHours: 3,
		GuestCount:    6,
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 30, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	resp, err := env.uc.Execute(context.Background(), validRequest(now.AddDate(0, 0, 2)))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("15:00"), resp.StartTime)
	// 3 часа по 800 плюс 2 лишних гостя по 500
	assert.Equal(t, int64(3400), resp.TotalPrice)
	assert.NotZero(t, resp.ID)
	assert.NotZero(t, resp.CustomerID)
}

func TestExecute_NotifiesAdminsWithSlotDetails(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 30, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	resp, err := env.uc.Execute(context.Background(), validRequest(now.AddDate(0, 0, 2)))
	require.NoError(t, err)

	msg := env.notifier.wait(t)
	assert.Contains(t, msg, fmt.Sprintf("#%d", resp.ID))
	assert.Contains(t, msg, "15:00")
	assert.Contains(t, msg, "18:00")
}

func TestExecute_RejectsConflictingSlot(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 30, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	date := now.AddDate(0, 0, 2)

	_, err := env.uc.Execute(context.Background(), validRequest(date))
	require.NoError(t, err)

	// Та же дата, пересекающееся время
	req := validRequest(date)
	req.StartHour = 16
	req.DurationHours = 2

	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_RejectsCleanupHour(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 30, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	date := now.AddDate(0, 0, 2)

	req := validRequest(date)
	req.StartHour = 12
	req.DurationHours = 2
	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 14:00 занят уборкой после брони 12:00-14:00
	req2 := validRequest(date)
	req2.StartHour = 14
	req2.DurationHours = 1

	_, err = env.uc.Execute(context.Background(), req2)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// А 15:00 уже свободен
	req3 := validRequest(date)
	req3.StartHour = 15
	req3.DurationHours = 1

	_, err = env.uc.Execute(context.Background(), req3)
	assert.NoError(t, err)
}

func TestExecute_RejectsOutsideOperatingHours(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 30, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	req := validRequest(now.AddDate(0, 0, 2))
	req.StartHour = 9

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestExecute_RejectsExceedingClosingTime(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 30, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	req := validRequest(now.AddDate(0, 0, 2))
	req.StartHour = 21
	req.DurationHours = 2

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrExceedsClosingTime)
}

func TestExecute_RejectsPastDate(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 30, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	req := validRequest(now.AddDate(0, 0, -1))

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_RejectsDateBeyondHorizon(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 30, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	req := validRequest(now.AddDate(0, 0, domain.MaxAdvanceBookingDays+1))

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_LeadTimeToday(t *testing.T) {
	// 12:30, ближайший доступный старт сегодня - 14:00
	now := time.Date(2025, 11, 10, 12, 30, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	req := validRequest(now)
	req.StartHour = 13
	req.DurationHours = 2

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	req.StartHour = 14
	_, err = env.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_LeadTimeExactHour(t *testing.T) {
	// Ровно 12:00, ближайший доступный старт - 13:00
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	req := validRequest(now)
	req.StartHour = 13
	req.DurationHours = 2

	_, err := env.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ValidationErrors(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 30, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	date := now.AddDate(0, 0, 2)

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"empty name", func(r *Request) { r.CustomerName = "" }},
		{"no phone and no telegram", func(r *Request) { r.CustomerPhone = "" }},
		{"zero duration", func(r *Request) { r.DurationHours = 0 }},
		{"too long duration", func(r *Request) { r.DurationHours = domain.MaxDurationHours + 1 }},
		{"zero guests", func(r *Request) { r.GuestCount = 0 }},
		{"too many guests", func(r *Request) { r.GuestCount = domain.MaxGuests + 1 }},
		{"negative start hour", func(r *Request) { r.StartHour = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(date)
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_TelegramOnlyCustomer(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 30, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	req := validRequest(now.AddDate(0, 0, 2))
	req.CustomerPhone = ""
	req.TelegramID = ptr.Ptr(int64(987654))
	req.Username = ptr.Ptr("aigul")

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.NotZero(t, resp.CustomerID)
}

func TestExecute_BookingNameAndPhoneOverride(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 30, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	req := validRequest(now.AddDate(0, 0, 2))
	req.BookingName = ptr.Ptr("Для мамы")
	req.BookingPhone = ptr.Ptr("+79997654321")

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.BookingName)
	assert.Equal(t, "Для мамы", *resp.BookingName)
	require.NotNil(t, resp.BookingPhone)
	assert.Equal(t, "+79997654321", *resp.BookingPhone)
}

func TestExecute_OvernightSpilloverBlocksNextDay(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 30, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	// Круглосуточный режим, чтобы ночная бронь была допустима
	eng, err := engine.New(0, 24)
	require.NoError(t, err)
	env.uc.engine = eng

	date := now.AddDate(0, 0, 2)
	prev := date.AddDate(0, 0, -1)

	nightStart, err := types.NewTimeStringFromHour(23)
	require.NoError(t, err)

	// Ночная бронь 23:00-03:00 на предыдущий день, заведена админом напрямую
	env.bookingRepo.bookings[prev.Format(domain.DateFormat)] = []*domain.Booking{{
		ID:            100,
		Date:          domain.DateOnly(prev),
		StartTime:     nightStart,
		DurationHours: 4,
		GuestCount:    4,
		Status:        domain.StatusConfirmed,
	}}

	// 02:00 следующего дня еще занято хвостом ночной брони
	req2 := validRequest(date)
	req2.StartHour = 2
	req2.DurationHours = 1
	_, err = env.uc.Execute(context.Background(), req2)
	assert.ErrorIs(t, err, ErrSpilloverConflict)

	// 03:00 занято уборкой после нее
	req3 := validRequest(date)
	req3.StartHour = 3
	req3.DurationHours = 1
	_, err = env.uc.Execute(context.Background(), req3)
	assert.ErrorIs(t, err, ErrSpilloverConflict)

	// 04:00 свободно
	req4 := validRequest(date)
	req4.StartHour = 4
	req4.DurationHours = 1
	_, err = env.uc.Execute(context.Background(), req4)
	assert.NoError(t, err)
}

func TestExecute_PriceUsesMatchingRule(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 30, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	date := now.AddDate(0, 0, 2)

	env.uc.pricingRepo = &fakePricingRepo{
		rules: []*domain.PriceRule{
			{
				ID:                 1,
				DateFrom:           domain.DateOnly(date),
				DateTo:             domain.DateOnly(date),
				HourFrom:           0,
				HourTo:             24,
				PricePerHour:       1200,
				PricePerExtraGuest: 700,
				MaxGuestsIncluded:  4,
				ChargeMode:         domain.ChargePerBooking,
				CreatedAt:          now,
			},
		},
		defaults: &domain.DefaultPricing{
			PricePerHour:       800,
			PricePerExtraGuest: 500,
			MaxGuestsIncluded:  4,
		},
	}

	resp, err := env.uc.Execute(context.Background(), validRequest(date))
	require.NoError(t, err)

	// 3 часа по 1200 плюс 2 лишних гостя по 700
	assert.Equal(t, int64(5000), resp.TotalPrice)
}
