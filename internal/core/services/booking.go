package services

import (
	"context"

	"github.com/suchimauz/gcal-booking-agent/internal/core/domain"
	"github.com/suchimauz/gcal-booking-agent/internal/core/ports/out"
	"github.com/suchimauz/gcal-booking-agent/internal/utils"
)

// bookMoment записывает часовую встречу на распознанный момент.
// Голая дата без времени получает час по умолчанию, в полночь не записываем
func (s *ChatAgentService) bookMoment(ctx context.Context, moment domain.ResolvedMoment) (domain.BookingResult, error) {
	startTime := moment.Time
	if moment.IsDayOnly() {
		startTime = utils.AtHourMinute(startTime, s.cfg.Booking.DefaultHour, 0)
	}

	return s.bookSlot(ctx, domain.CandidateSlot{
		StartTime: startTime,
		EndTime:   startTime.Add(s.cfg.SlotDuration()),
	})
}

// bookSlot перепроверяет окно прямо перед вставкой и создает событие.
// Между чтением и записью остается гонка: стор не дает транзакций,
// ложной атомарности здесь не изображаем
func (s *ChatAgentService) bookSlot(ctx context.Context, slot domain.CandidateSlot) (domain.BookingResult, error) {
	busy, err := s.calendarPort.ListEvents(ctx, slot.StartTime, slot.EndTime)
	if err != nil {
		s.logger.Error("booking.recheck.fetch_failed", out.LogFields{
			"begin": slot.StartTime,
			"error": err.Error(),
		})
		return domain.BookingResult{}, err
	}

	conflicts := findConflicts(slot.StartTime, slot.EndTime, busy)
	if len(conflicts) > 0 {
		s.logger.Info("booking.recheck.conflict", out.LogFields{
			"begin":     slot.StartTime,
			"conflicts": len(conflicts),
		})
		return domain.BookingResult{
			Outcome:   domain.BookingOutcomeConflict,
			Slot:      slot,
			Conflicts: conflicts,
		}, nil
	}

	booking, err := s.calendarPort.CreateEvent(ctx, slot.StartTime, slot.EndTime, s.cfg.Booking.Summary)
	if err != nil {
		s.logger.Error("booking.create.failed", out.LogFields{
			"begin": slot.StartTime,
			"error": err.Error(),
		})
		return domain.BookingResult{}, err
	}

	// Занятость этого дня изменилась
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.InvalidateBusyIntervals(ctx, utils.StartCurrentDay(slot.StartTime))
	}

	s.logger.Info("booking.create.success", out.LogFields{
		"begin":   slot.StartTime,
		"end":     slot.EndTime,
		"eventId": booking.EventID,
	})
	return domain.BookingResult{
		Outcome: domain.BookingOutcomeBooked,
		Slot:    slot,
		Booking: booking,
	}, nil
}
