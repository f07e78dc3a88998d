package get_availability

import (
	"time"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

// generateCandidateStarts генерирует все кандидаты начала слота внутри окна
// рабочих часов. Кандидаты идут от времени открытия с фиксированным шагом
// сетки, слот включается только если целиком помещается до закрытия.
//
// Генерация выполняется в гражданском времени, конвертация в абсолютные
// моменты происходит отдельным шагом. Это дает один и тот же набор
// настенных времен независимо от переходов на летнее время.
func generateCandidateStarts(window domain.HoursWindow, durationMinutes int) ([]civiltime.Clock, error) {
	candidates := make([]civiltime.Clock, 0)
	current := window.Open

	for current.IsBefore(window.Close) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Слот вылез за полночь, дальше кандидатов нет
			break
		}
		if slotEnd.IsAfter(window.Close) {
			break
		}

		candidates = append(candidates, current)

		next, err := current.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return candidates, nil
}

// materializeSlots конвертирует гражданские кандидаты в слоты с абсолютными
// моментами начала и окончания
func materializeSlots(
	conv *civiltime.Converter,
	date time.Time,
	candidates []civiltime.Clock,
	durationMinutes int,
) ([]Slot, error) {
	slots := make([]Slot, 0, len(candidates))

	for _, start := range candidates {
		startAt, err := conv.Combine(date, start)
		if err != nil {
			return nil, err
		}

		slots = append(slots, Slot{
			StartTime: start,
			StartAt:   startAt,
			EndAt:     startAt.Add(time.Duration(durationMinutes) * time.Minute),
		})
	}

	return slots, nil
}

// filterByLeadTime оставляет только слоты, начинающиеся не раньше чем через
// leadMinutes от текущего момента
func filterByLeadTime(slots []Slot, now time.Time, leadMinutes int) []Slot {
	minStart := now.Add(time.Duration(leadMinutes) * time.Minute)

	filtered := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if !slot.StartAt.Before(minStart) {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// excludeOverlapping убирает слоты, пересекающиеся с существующими активными
// бронированиями. Пересечение строгое: слот, начинающийся ровно в момент
// окончания бронирования (или наоборот), остается доступным.
func excludeOverlapping(slots []Slot, bookings []*domain.Booking) []Slot {
	available := make([]Slot, 0, len(slots))

	for _, slot := range slots {
		overlaps := false
		for _, booking := range bookings {
			if !booking.IsActive() {
				continue
			}
			if booking.Overlaps(slot.StartAt, slot.EndAt) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			available = append(available, slot)
		}
	}

	return available
}
