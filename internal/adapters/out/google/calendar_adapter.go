package google

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/suchimauz/gcal-booking-agent/internal/config"
	"github.com/suchimauz/gcal-booking-agent/internal/core/domain"
	"github.com/suchimauz/gcal-booking-agent/internal/core/ports/out"
)

// CalendarAdapter - адаптер Google Calendar API, реализует CalendarPort
type CalendarAdapter struct {
	service    *calendar.Service
	calendarID string
	timezone   string
	location   *time.Location
	logger     out.LoggerPort
}

func NewCalendarAdapter(ctx context.Context, cfg *config.Config, logger out.LoggerPort) (*CalendarAdapter, error) {
	if cfg.Google.CredentialsFile == "" {
		return nil, fmt.Errorf("google credentials file is not configured")
	}

	service, err := calendar.NewService(ctx,
		option.WithCredentialsFile(cfg.Google.CredentialsFile),
		option.WithScopes(calendar.CalendarScope),
	)
	if err != nil {
		logger.Error("gcal.service.init_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	logger.Info("gcal.service.initialized", out.LogFields{
		"calendarId": cfg.Google.CalendarID,
		"timezone":   cfg.App.Timezone,
	})

	return &CalendarAdapter{
		service:    service,
		calendarID: cfg.Google.CalendarID,
		timezone:   cfg.App.Timezone,
		location:   cfg.Location(),
		logger:     logger,
	}, nil
}

func (a *CalendarAdapter) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]domain.BusyInterval, error) {
	a.logger.Debug("gcal.events.fetch", out.LogFields{
		"timeMin": timeMin,
		"timeMax": timeMax,
	})

	// singleEvents разворачивает повторяющиеся события в отдельные
	events, err := a.service.Events.List(a.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		a.logger.Error("gcal.events.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, &out.StoreError{Op: "list", Err: err}
	}

	intervals := make([]domain.BusyInterval, 0, len(events.Items))
	for _, item := range events.Items {
		interval, err := a.busyInterval(item)
		if err != nil {
			a.logger.Warn("gcal.events.decode_failed", out.LogFields{
				"eventId": item.Id,
				"error":   err.Error(),
			})
			continue
		}
		intervals = append(intervals, interval)
	}

	a.logger.Debug("gcal.events.fetch_success", out.LogFields{
		"count": len(intervals),
	})
	return intervals, nil
}

func (a *CalendarAdapter) CreateEvent(ctx context.Context, startTime, endTime time.Time, summary string) (*domain.Booking, error) {
	a.logger.Info("gcal.events.insert", out.LogFields{
		"begin":   startTime,
		"end":     endTime,
		"summary": summary,
	})

	event := &calendar.Event{
		Summary: summary,
		Start: &calendar.EventDateTime{
			DateTime: startTime.Format(time.RFC3339),
			TimeZone: a.timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: endTime.Format(time.RFC3339),
			TimeZone: a.timezone,
		},
	}

	created, err := a.service.Events.Insert(a.calendarID, event).Context(ctx).Do()
	if err != nil {
		a.logger.Error("gcal.events.insert_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, &out.StoreError{Op: "insert", Err: err}
	}

	a.logger.Info("gcal.events.insert_success", out.LogFields{
		"eventId": created.Id,
	})
	return &domain.Booking{
		EventID:   created.Id,
		StartTime: startTime,
		EndTime:   endTime,
		Summary:   summary,
	}, nil
}

// busyInterval переводит событие календаря в занятый интервал.
// У событий на весь день заполнена только дата, без времени
func (a *CalendarAdapter) busyInterval(item *calendar.Event) (domain.BusyInterval, error) {
	if item.Start == nil || item.End == nil {
		return domain.BusyInterval{}, fmt.Errorf("event %s has no start or end", item.Id)
	}

	if item.Start.DateTime != "" && item.End.DateTime != "" {
		startTime, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return domain.BusyInterval{}, err
		}
		endTime, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return domain.BusyInterval{}, err
		}
		return domain.BusyInterval{
			StartTime: startTime.In(a.location),
			EndTime:   endTime.In(a.location),
			Summary:   item.Summary,
		}, nil
	}

	startTime, err := time.ParseInLocation("2006-01-02", item.Start.Date, a.location)
	if err != nil {
		return domain.BusyInterval{}, err
	}
	endTime, err := time.ParseInLocation("2006-01-02", item.End.Date, a.location)
	if err != nil {
		return domain.BusyInterval{}, err
	}
	return domain.BusyInterval{
		StartTime: startTime,
		EndTime:   endTime,
		Summary:   item.Summary,
		AllDay:    true,
	}, nil
}
