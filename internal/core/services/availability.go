package services

import (
	"context"
	"time"

	"github.com/suchimauz/gcal-booking-agent/internal/core/domain"
	"github.com/suchimauz/gcal-booking-agent/internal/core/ports/out"
	"github.com/suchimauz/gcal-booking-agent/internal/utils"
)

// checkSlotAvailability проверяет одно часовое окно [moment, moment+1h).
// Окно всегда читается из стора напрямую, без кэша
func (s *ChatAgentService) checkSlotAvailability(ctx context.Context, moment domain.ResolvedMoment) (domain.SlotAvailability, error) {
	window := domain.CandidateSlot{
		StartTime: moment.Time,
		EndTime:   moment.Time.Add(s.cfg.SlotDuration()),
	}

	busy, err := s.calendarPort.ListEvents(ctx, window.StartTime, window.EndTime)
	if err != nil {
		s.logger.Error("availability.window.fetch_failed", out.LogFields{
			"begin": window.StartTime,
			"error": err.Error(),
		})
		return domain.SlotAvailability{}, err
	}

	result := domain.SlotAvailability{
		Window:    window,
		Status:    domain.AvailabilityStatusFree,
		Conflicts: findConflicts(window.StartTime, window.EndTime, busy),
	}
	if len(result.Conflicts) > 0 {
		result.Status = domain.AvailabilityStatusBusy
	}

	s.logger.Debug("availability.window.checked", out.LogFields{
		"begin":     window.StartTime,
		"status":    result.Status,
		"conflicts": len(result.Conflicts),
	})
	return result, nil
}

// checkDayAvailability сообщает, есть ли вообще события в указанный день
func (s *ChatAgentService) checkDayAvailability(ctx context.Context, moment domain.ResolvedMoment) (domain.DayAvailability, error) {
	dayStart := moment.DayStart()

	busy, err := s.busyForDay(ctx, dayStart, moment.DayEnd())
	if err != nil {
		s.logger.Error("availability.day.fetch_failed", out.LogFields{
			"day":   dayStart,
			"error": err.Error(),
		})
		return domain.DayAvailability{}, err
	}

	return domain.DayAvailability{Day: dayStart, Events: busy}, nil
}

// enumerateDaySlots разбивает рабочий день на последовательные часовые слоты
// и оставляет только свободные
func (s *ChatAgentService) enumerateDaySlots(ctx context.Context, moment domain.ResolvedMoment) (domain.SlotEnumeration, error) {
	dayStart := moment.DayStart()

	busy, err := s.busyForDay(ctx, dayStart, moment.DayEnd())
	if err != nil {
		s.logger.Error("availability.slots.fetch_failed", out.LogFields{
			"day":   dayStart,
			"error": err.Error(),
		})
		return domain.SlotEnumeration{}, err
	}

	slots := buildDaySlots(dayStart, s.cfg.Business.DayStartHour, s.cfg.Business.DayEndHour, s.cfg.SlotDuration())
	free := freeSlots(slots, busy)

	s.logger.Debug("availability.slots.enumerated", out.LogFields{
		"day":        dayStart,
		"total":      len(slots),
		"free":       len(free),
		"busyEvents": len(busy),
	})
	return domain.SlotEnumeration{Day: dayStart, FreeSlots: free}, nil
}

// busyForDay читает занятые интервалы дня, по возможности из кэша
func (s *ChatAgentService) busyForDay(ctx context.Context, dayStart, dayEnd time.Time) ([]domain.BusyInterval, error) {
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if busy, exists := s.cachePort.GetBusyIntervals(ctx, dayStart); exists {
			s.logger.Debug("availability.busy.cache.hit", out.LogFields{
				"day":   dayStart,
				"count": len(busy),
			})
			return busy, nil
		}
	}

	busy, err := s.calendarPort.ListEvents(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StoreBusyIntervals(ctx, dayStart, busy)
	}
	return busy, nil
}

// buildDaySlots генерирует последовательные непересекающиеся слоты рабочего окна
func buildDaySlots(day time.Time, startHour, endHour int, slotDuration time.Duration) []domain.CandidateSlot {
	slots := make([]domain.CandidateSlot, 0)

	currentTime := utils.AtHourMinute(day, startHour, 0)
	windowEnd := utils.AtHourMinute(day, endHour, 0)

	for {
		slotEndTime := currentTime.Add(slotDuration)
		if slotEndTime.After(windowEnd) {
			break
		}
		slots = append(slots, domain.CandidateSlot{
			StartTime: currentTime,
			EndTime:   slotEndTime,
		})
		currentTime = slotEndTime
	}

	return slots
}

// findConflicts возвращает занятые интервалы, пересекающие полуоткрытое окно [start, end).
// Проверка попарная, сортированность списка не предполагается
func findConflicts(start, end time.Time, busy []domain.BusyInterval) []domain.BusyInterval {
	conflicts := make([]domain.BusyInterval, 0)
	for _, interval := range busy {
		if interval.Overlaps(start, end) {
			conflicts = append(conflicts, interval)
		}
	}
	return conflicts
}

// freeSlots оставляет слоты без единого пересечения с занятыми интервалами
func freeSlots(slots []domain.CandidateSlot, busy []domain.BusyInterval) []domain.CandidateSlot {
	free := make([]domain.CandidateSlot, 0)
	for _, slot := range slots {
		if len(findConflicts(slot.StartTime, slot.EndTime, busy)) == 0 {
			free = append(free, slot)
		}
	}
	return free
}
