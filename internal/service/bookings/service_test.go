package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	"github.com/mrgoksal/Chilliwili/internal/engine"
	bookingRepo "github.com/mrgoksal/Chilliwili/internal/infra/storage/booking"
	customerRepo "github.com/mrgoksal/Chilliwili/internal/infra/storage/customer"
	"github.com/mrgoksal/Chilliwili/internal/service/bookings/models"
	"github.com/mrgoksal/Chilliwili/pkg/ptr"
	"github.com/mrgoksal/Chilliwili/pkg/types"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	byID     map[int64]*domain.Booking
	deleted  map[int64]bool
	cancels  int
	statuses []domain.BookingStatus
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{byID: make(map[int64]*domain.Booking), deleted: make(map[int64]bool)}
	for _, b := range bookings {
		r.byID[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) GetActiveByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := make([]*domain.Booking, 0)
	for _, b := range r.byID {
		if b.IsActive() && b.Date.Equal(domain.DateOnly(date)) {
			active = append(active, b)
		}
	}
	return active, nil
}

func (r *fakeBookingRepo) GetByCustomerID(_ context.Context, customerID int64, activeOnly bool) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.byID {
		if b.CustomerID != customerID {
			continue
		}
		if activeOnly && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeBookingRepo) GetByPeriod(_ context.Context, from, to time.Time, includeInactive bool) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.byID {
		if b.Date.Before(domain.DateOnly(from)) || b.Date.After(domain.DateOnly(to)) {
			continue
		}
		if !includeInactive && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	r.statuses = append(r.statuses, status)
	return nil
}

func (r *fakeBookingRepo) CancelActive(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok || b.Status == domain.StatusCancelled {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	r.cancels++
	return nil
}

func (r *fakeBookingRepo) UpdateFields(_ context.Context, id int64, update domain.BookingUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if update.Date != nil {
		b.Date = *update.Date
	}
	if update.StartTime != nil {
		b.StartTime = *update.StartTime
	}
	if update.DurationHours != nil {
		b.DurationHours = *update.DurationHours
	}
	if update.GuestCount != nil {
		b.GuestCount = *update.GuestCount
	}
	if update.TotalPrice != nil {
		b.TotalPrice = *update.TotalPrice
	}
	if update.BookingName != nil {
		b.BookingName = update.BookingName
	}
	if update.BookingPhone != nil {
		b.BookingPhone = update.BookingPhone
	}
	if update.Notes != nil {
		b.Notes = update.Notes
	}
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.byID, id)
	r.deleted[id] = true
	return nil
}

type fakeCustomerRepo struct {
	customers map[int64]*domain.Customer
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

type fakePricingRepo struct{}

func (fakePricingRepo) GetActiveRules(_ context.Context) ([]*domain.PriceRule, error) {
	return nil, nil
}

func (fakePricingRepo) GetDefaults(_ context.Context) (*domain.DefaultPricing, error) {
	return &domain.DefaultPricing{PricePerHour: 800, PricePerExtraGuest: 500, MaxGuestsIncluded: 4}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type customerMessage struct {
	chatID int64
	text   string
}

// fakeNotifier отдает сообщения через каналы, потому что сервис
// отправляет уведомления из горутин
type fakeNotifier struct {
	adminMessages    chan string
	customerMessages chan customerMessage
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		adminMessages:    make(chan string, 8),
		customerMessages: make(chan customerMessage, 8),
	}
}

func (n *fakeNotifier) NotifyAdmins(_ context.Context, text string) {
	n.adminMessages <- text
}

func (n *fakeNotifier) Notify(_ context.Context, chatID int64, text string) error {
	n.customerMessages <- customerMessage{chatID: chatID, text: text}
	return nil
}

func waitAdminMessage(t *testing.T, n *fakeNotifier) string {
	t.Helper()
	select {
	case msg := <-n.adminMessages:
		return msg
	case <-time.After(time.Second):
		t.Fatal("admin notification was not sent")
		return ""
	}
}

func waitCustomerMessage(t *testing.T, n *fakeNotifier) customerMessage {
	t.Helper()
	select {
	case msg := <-n.customerMessages:
		return msg
	case <-time.After(time.Second):
		t.Fatal("customer notification was not sent")
		return customerMessage{}
	}
}

func requireNoCustomerMessage(t *testing.T, n *fakeNotifier) {
	t.Helper()
	select {
	case msg := <-n.customerMessages:
		t.Fatalf("unexpected customer notification: %s", msg.text)
	case <-time.After(50 * time.Millisecond):
	}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)

func testBooking(t *testing.T, id, customerID int64, startHour, duration int, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	start, err := types.NewTimeStringFromHour(startHour)
	require.NoError(t, err)

	return &domain.Booking{
		ID:            id,
		CustomerID:    customerID,
		Date:          testDate,
		StartTime:     start,
		DurationHours: duration,
		GuestCount:    4,
		TotalPrice:    int64(duration) * 800,
		Status:        status,
	}
}

// newServiceWithNotifier собирает сервис на фейках. Гость 10 доступен
// в Telegram, гость 20 заведен без него
func newServiceWithNotifier(t *testing.T, repo *fakeBookingRepo) (*Service, *fakeNotifier) {
	t.Helper()

	eng, err := engine.New(domain.DefaultOpenHour, domain.DefaultCloseHour)
	require.NoError(t, err)

	customers := &fakeCustomerRepo{customers: map[int64]*domain.Customer{
		10: {ID: 10, Name: "Иван", Phone: "+79990001122", TelegramID: ptr.Ptr(int64(111000))},
		20: {ID: 20, Name: "Мария", Phone: "+79990003344"},
	}}
	notifier := newFakeNotifier()

	svc := NewService(repo, customers, fakePricingRepo{}, eng, fakeTxManager{}, notifier, nil, nopLogger{})
	return svc, notifier
}

func newService(t *testing.T, repo *fakeBookingRepo) *Service {
	t.Helper()

	svc, _ := newServiceWithNotifier(t, repo)
	return svc
}

func TestConfirm(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, 10, 15, 2, domain.StatusPending))
	svc := newService(t, repo)

	resp, err := svc.Confirm(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// Повторное подтверждение отклоняется
	_, err = svc.Confirm(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCannotConfirm)
}

func TestConfirm_NotFound(t *testing.T) {
	svc := newService(t, newFakeBookingRepo())

	_, err := svc.Confirm(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_Idempotent(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, 10, 15, 2, domain.StatusConfirmed))
	svc := newService(t, repo)

	req := &models.CancelBookingRequest{BookingID: 1}

	require.NoError(t, svc.Cancel(context.Background(), req))
	assert.Equal(t, 1, repo.cancels)

	// Повторная отмена не ошибка и не второй UPDATE
	require.NoError(t, svc.Cancel(context.Background(), req))
	assert.Equal(t, 1, repo.cancels)
}

func TestCancel_OwnershipCheck(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, 10, 15, 2, domain.StatusConfirmed))
	svc := newService(t, repo)

	// Чужой гость не может отменить
	err := svc.Cancel(context.Background(), &models.CancelBookingRequest{
		BookingID:  1,
		CustomerID: ptr.Ptr(int64(99)),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Владелец может
	err = svc.Cancel(context.Background(), &models.CancelBookingRequest{
		BookingID:  1,
		CustomerID: ptr.Ptr(int64(10)),
	})
	assert.NoError(t, err)

	// Админ (без CustomerID) может отменять любую
	repo2 := newFakeBookingRepo(testBooking(t, 2, 10, 18, 2, domain.StatusPending))
	svc2 := newService(t, repo2)
	err = svc2.Cancel(context.Background(), &models.CancelBookingRequest{BookingID: 2})
	assert.NoError(t, err)
}

func TestUpdate_MoveToFreeSlot(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, 10, 15, 2, domain.StatusConfirmed))
	svc := newService(t, repo)

	resp, err := svc.Update(context.Background(), &models.UpdateBookingRequest{
		BookingID: 1,
		StartHour: ptr.Ptr(18),
	})
	require.NoError(t, err)

	assert.Equal(t, "18:00", resp.StartTime)
	// Цена пересчитана: 2 часа по 800, гостей в пределах базы
	assert.Equal(t, int64(1600), resp.TotalPrice)
}

func TestUpdate_SelfOverlapAllowed(t *testing.T) {
	// Перенос на час вперед пересекается со старым интервалом самой брони,
	// но это не конфликт
	repo := newFakeBookingRepo(testBooking(t, 1, 10, 15, 3, domain.StatusConfirmed))
	svc := newService(t, repo)

	resp, err := svc.Update(context.Background(), &models.UpdateBookingRequest{
		BookingID: 1,
		StartHour: ptr.Ptr(16),
	})
	require.NoError(t, err)
	assert.Equal(t, "16:00", resp.StartTime)
}

func TestUpdate_ConflictWithOtherBooking(t *testing.T) {
	repo := newFakeBookingRepo(
		testBooking(t, 1, 10, 12, 2, domain.StatusConfirmed),
		testBooking(t, 2, 20, 17, 2, domain.StatusConfirmed),
	)
	svc := newService(t, repo)

	_, err := svc.Update(context.Background(), &models.UpdateBookingRequest{
		BookingID: 1,
		StartHour: ptr.Ptr(18),
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestUpdate_GuestCountRepricesBooking(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, 10, 15, 2, domain.StatusConfirmed))
	svc := newService(t, repo)

	resp, err := svc.Update(context.Background(), &models.UpdateBookingRequest{
		BookingID:  1,
		GuestCount: ptr.Ptr(6),
	})
	require.NoError(t, err)

	// 2 часа по 800 плюс 2 лишних гостя по 500
	assert.Equal(t, int64(2600), resp.TotalPrice)
}

func TestUpdate_CancelledBookingRejected(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, 10, 15, 2, domain.StatusCancelled))
	svc := newService(t, repo)

	_, err := svc.Update(context.Background(), &models.UpdateBookingRequest{
		BookingID: 1,
		StartHour: ptr.Ptr(18),
	})
	assert.ErrorIs(t, err, ErrCannotUpdate)
}

func TestUpdate_EmptyAndInvalid(t *testing.T) {
	svc := newService(t, newFakeBookingRepo(testBooking(t, 1, 10, 15, 2, domain.StatusConfirmed)))

	_, err := svc.Update(context.Background(), &models.UpdateBookingRequest{BookingID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), &models.UpdateBookingRequest{
		BookingID:  1,
		GuestCount: ptr.Ptr(domain.MaxGuests + 1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, 10, 15, 2, domain.StatusConfirmed))
	svc := newService(t, repo)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.True(t, repo.deleted[1])

	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrBookingNotFound)
}

func TestGetCustomerBookings_ActiveOnly(t *testing.T) {
	repo := newFakeBookingRepo(
		testBooking(t, 1, 10, 12, 2, domain.StatusConfirmed),
		testBooking(t, 2, 10, 17, 2, domain.StatusCancelled),
		testBooking(t, 3, 20, 19, 1, domain.StatusConfirmed),
	)
	svc := newService(t, repo)

	resp, err := svc.GetCustomerBookings(context.Background(), 10, true)
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)

	resp, err = svc.GetCustomerBookings(context.Background(), 10, false)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestGetByPeriod_Validation(t *testing.T) {
	svc := newService(t, newFakeBookingRepo())

	_, err := svc.GetByPeriod(context.Background(), &models.GetPeriodBookingsRequest{
		From: testDate,
		To:   testDate.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConfirm_NotifiesAdminsAndCustomer(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, 10, 15, 2, domain.StatusPending))
	svc, notifier := newServiceWithNotifier(t, repo)

	_, err := svc.Confirm(context.Background(), 1)
	require.NoError(t, err)

	assert.Contains(t, waitAdminMessage(t, notifier), "Бронь #1 подтверждена")

	msg := waitCustomerMessage(t, notifier)
	assert.Equal(t, int64(111000), msg.chatID)
	assert.Contains(t, msg.text, "подтверждена")
}

func TestCancel_ByAdminNotifiesCustomer(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, 10, 15, 2, domain.StatusConfirmed))
	svc, notifier := newServiceWithNotifier(t, repo)

	require.NoError(t, svc.Cancel(context.Background(), &models.CancelBookingRequest{BookingID: 1}))

	assert.Contains(t, waitAdminMessage(t, notifier), "Бронь #1 отменена")

	msg := waitCustomerMessage(t, notifier)
	assert.Equal(t, int64(111000), msg.chatID)
	assert.Contains(t, msg.text, "отменена")
}

func TestCancel_ByOwnerSkipsCustomerNotification(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, 10, 15, 2, domain.StatusConfirmed))
	svc, notifier := newServiceWithNotifier(t, repo)

	require.NoError(t, svc.Cancel(context.Background(), &models.CancelBookingRequest{
		BookingID:  1,
		CustomerID: ptr.Ptr(int64(10)),
	}))

	// Админам сообщаем всегда, гостю о его собственной отмене не пишем
	assert.Contains(t, waitAdminMessage(t, notifier), "Бронь #1 отменена")
	requireNoCustomerMessage(t, notifier)
}

func TestUpdate_NotifiesAdminsAndCustomer(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, 10, 15, 2, domain.StatusConfirmed))
	svc, notifier := newServiceWithNotifier(t, repo)

	_, err := svc.Update(context.Background(), &models.UpdateBookingRequest{
		BookingID: 1,
		StartHour: ptr.Ptr(18),
	})
	require.NoError(t, err)

	assert.Contains(t, waitAdminMessage(t, notifier), "Бронь #1 изменена")

	msg := waitCustomerMessage(t, notifier)
	assert.Equal(t, int64(111000), msg.chatID)
	assert.Contains(t, msg.text, "18:00")
}

func TestDelete_NotifiesCustomerOfActiveBooking(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, 10, 15, 2, domain.StatusConfirmed))
	svc, notifier := newServiceWithNotifier(t, repo)

	require.NoError(t, svc.Delete(context.Background(), 1))

	assert.Contains(t, waitAdminMessage(t, notifier), "Бронь #1 удалена")

	msg := waitCustomerMessage(t, notifier)
	assert.Equal(t, int64(111000), msg.chatID)
}

func TestDelete_CancelledBookingSkipsCustomerNotification(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, 10, 15, 2, domain.StatusCancelled))
	svc, notifier := newServiceWithNotifier(t, repo)

	require.NoError(t, svc.Delete(context.Background(), 1))

	assert.Contains(t, waitAdminMessage(t, notifier), "Бронь #1 удалена")
	requireNoCustomerMessage(t, notifier)
}

func TestConfirm_CustomerWithoutTelegramSkipped(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, 20, 15, 2, domain.StatusPending))
	svc, notifier := newServiceWithNotifier(t, repo)

	_, err := svc.Confirm(context.Background(), 1)
	require.NoError(t, err)

	waitAdminMessage(t, notifier)
	requireNoCustomerMessage(t, notifier)
}
