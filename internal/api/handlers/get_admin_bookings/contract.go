package get_admin_bookings

import (
	"context"

	"github.com/mrgoksal/Chilliwili/internal/service/bookings/models"
)

type BookingService interface {
	GetByPeriod(ctx context.Context, req *models.GetPeriodBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
