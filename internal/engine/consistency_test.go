package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrgoksal/Chilliwili/internal/domain"
)

// randomBookingSet наращивает случайный набор броней, принимая только те,
// которые проходят Validate - набор всегда корректен по построению
func randomBookingSet(t *testing.T, e *Engine, rng *rand.Rand, attempts int) []*domain.Booking {
	t.Helper()
	var sameDay []*domain.Booking

	for i := 0; i < attempts; i++ {
		start := e.OpenHour() + rng.Intn(e.CloseHour()-e.OpenHour())
		duration := 1 + rng.Intn(4)

		res, err := e.Validate(start, duration, sameDay, nil)
		require.NoError(t, err)
		if res.OK {
			sameDay = append(sameDay, testBooking(t, start, duration))
		}
	}
	return sameDay
}

// Калькулятор доступности и валидатор никогда не расходятся: часовой слот
// доступен тогда и только тогда, когда одночасовая бронь на него проходит проверку
func TestAvailabilityMatchesValidator(t *testing.T) {
	e := testEngine(t)
	rng := rand.New(rand.NewSource(20251115))

	for trial := 0; trial < 200; trial++ {
		sameDay := randomBookingSet(t, e, rng, 1+rng.Intn(8))

		available, err := e.AvailableStarts(testDate, sameDay, nil, nil)
		require.NoError(t, err)

		availableSet := make(map[int]bool, len(available))
		for _, h := range available {
			availableSet[h] = true
		}

		for _, slot := range EnumerateSlots(e.OpenHour(), e.CloseHour()) {
			res, err := e.Validate(slot, 1, sameDay, nil)
			require.NoError(t, err)
			assert.Equal(t, res.OK, availableSet[slot],
				"trial %d: calculator and validator disagree on slot %d (bookings: %d)",
				trial, slot, len(sameDay))
		}
	}
}

// Никакого двойного бронирования: к корректному набору нельзя добавить бронь,
// пересекающую занятый интервал любой существующей (включая час уборки)
func TestNoDoubleBooking(t *testing.T) {
	e := testEngine(t)
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		sameDay := randomBookingSet(t, e, rng, 2+rng.Intn(8))
		if len(sameDay) == 0 {
			continue
		}

		// Строим заведомо конфликтующую добавку поверх случайной существующей брони
		victim := sameDay[rng.Intn(len(sameDay))]
		victimStart, err := victim.StartTime.Hour()
		require.NoError(t, err)

		overlapStart := victimStart + rng.Intn(victim.DurationHours)
		res, err := e.Validate(overlapStart, 1, sameDay, nil)
		require.NoError(t, err)
		assert.False(t, res.OK, "trial %d: overlapping addition at %d accepted", trial, overlapStart)
		assert.Equal(t, ReasonSlotTaken, res.Reason)
	}
}

// Попарная корректность принятого набора: занятые интервалы не пересекаются,
// а каждая бронь не залезает в расширенный интервал принятых до нее
func TestAcceptedSetsArePairwiseDisjoint(t *testing.T) {
	e := testEngine(t)
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		sameDay := randomBookingSet(t, e, rng, 10)

		for i, a := range sameDay {
			aStart, err := a.StartTime.Hour()
			require.NoError(t, err)
			aEnd := aStart + a.DurationHours

			// Порядок в срезе совпадает с порядком принятия
			for _, b := range sameDay[i+1:] {
				bStart, err := b.StartTime.Hour()
				require.NoError(t, err)
				bEnd := bStart + b.DurationHours

				// Занятые часы не пересекаются
				assert.False(t, bStart < aEnd && bEnd > aStart,
					"trial %d: occupied intervals [%d,%d) and [%d,%d) overlap",
					trial, aStart, aEnd, bStart, bEnd)

				// Более поздняя бронь либо целиком до ранней, либо после ее уборки
				assert.True(t, bEnd <= aStart || bStart >= aEnd+domain.BufferHours,
					"trial %d: booking [%d,%d) violates buffered interval of [%d,%d)",
					trial, bStart, bEnd, aStart, aEnd)
			}
		}
	}
}
