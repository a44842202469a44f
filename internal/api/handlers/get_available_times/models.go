package get_available_times

import (
	"fmt"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	getAvailableTimes "github.com/mrgoksal/Chilliwili/internal/usecase/get_available_times"
)

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	Date           string   `json:"date"`
	AvailableHours []int    `json:"availableHours"`
	AvailableTimes []string `json:"availableTimes"` // Те же часы строками "15:00"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTimes.Response) *AvailableTimesResponse {
	times := make([]string, 0, len(resp.AvailableHours))
	for _, hour := range resp.AvailableHours {
		times = append(times, fmt.Sprintf("%02d:00", hour))
	}

	return &AvailableTimesResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		AvailableHours: resp.AvailableHours,
		AvailableTimes: times,
	}
}
