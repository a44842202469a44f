package domain

// Operating window defaults
const (
	DefaultOpenHour  = 10
	DefaultCloseHour = 22
)

// Buffer after every booking reserved for cleanup before the next guests
const BufferHours = 1

// HoursPerDay количество часов в сутках, используется при переносе через полночь
const HoursPerDay = 24

// Business validation constants
const (
	MinDurationHours       = 1
	MaxDurationHours       = 12
	MinGuests              = 1
	MaxGuests              = 30
	MaxAdvanceBookingDays  = 60
	MaxNotesLength         = 500
	MaxNameLength          = 100
	MaxPhoneLength         = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы броней, занимающих свои слоты
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
