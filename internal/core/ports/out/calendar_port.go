package out

import (
	"context"
	"fmt"
	"time"

	"github.com/suchimauz/gcal-booking-agent/internal/core/domain"
)

// CalendarPort - внешний календарь (Google Calendar).
// Ядро не предполагает, что события приходят отсортированными
type CalendarPort interface {
	// ListEvents возвращает события, пересекающие окно [timeMin, timeMax)
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]domain.BusyInterval, error)

	// CreateEvent создает событие с фиксированной аннотацией таймзоны
	CreateEvent(ctx context.Context, startTime, endTime time.Time, summary string) (*domain.Booking, error)
}

// StoreError - ошибка одного обращения к календарю.
// Недоступность сервиса на старте (не загрузились учетные данные) моделируется
// нулевым CalendarPort, а не этой ошибкой
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("calendar store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
