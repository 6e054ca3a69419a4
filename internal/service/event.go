package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/smirnov-dev/presence_sync/internal/eligibility"
	"github.com/smirnov-dev/presence_sync/internal/models"
	"github.com/smirnov-dev/presence_sync/internal/visibility"
)

// CreateEvent проверяет инварианты и создает событие
func (s *boardService) CreateEvent(ctx context.Context, e models.Event) (models.Event, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "event",
		"method":  "CreateEvent",
		"name":    e.Name,
	})
	log.Info("Attempting to create a new event")

	if s.events.NameExists(e.Name, 0) {
		log.Warn("Event name already in use")
		return models.Event{}, fmt.Errorf("service: event %q: %w", e.Name, ErrDuplicateName)
	}
	if e.Assignment.Empty() {
		log.Warn("Event has no assignment criteria")
		return models.Event{}, fmt.Errorf("service: event %q: %w", e.Name, ErrEmptyAssignment)
	}
	if err := checkDateOrder(e.StartDate, e.EndDate); err != nil {
		log.Warn("Event date range is inverted")
		return models.Event{}, fmt.Errorf("service: event %q: %w", e.Name, err)
	}

	if e.Status == "" {
		e.Status = models.EventStatusUpcoming
	}
	created := s.events.Create(ctx, e)
	log.WithField("event_id", created.ID).Info("Event created successfully")
	return created, nil
}

// UpdateEvent накладывает разреженный патч на событие
func (s *boardService) UpdateEvent(ctx context.Context, id int64, p models.EventPatch) (models.Event, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "event",
		"method":   "UpdateEvent",
		"event_id": id,
	})
	log.Info("Attempting to update event")

	existing, ok := s.events.Get(id)
	if !ok {
		log.Warn("Attempted to update a non-existent event")
		return models.Event{}, fmt.Errorf("service: event %d not found for update: %w", id, ErrNotFound)
	}
	if p.Name != nil && s.events.NameExists(*p.Name, id) {
		log.Warn("Event name already in use")
		return models.Event{}, fmt.Errorf("service: event %q: %w", *p.Name, ErrDuplicateName)
	}
	if p.Assignment != nil && p.Assignment.Empty() {
		log.Warn("Event assignment patch is empty")
		return models.Event{}, fmt.Errorf("service: event %d: %w", id, ErrEmptyAssignment)
	}

	merged := p.Apply(existing)
	if err := checkDateOrder(merged.StartDate, merged.EndDate); err != nil {
		log.Warn("Event date range is inverted")
		return models.Event{}, fmt.Errorf("service: event %d: %w", id, err)
	}

	updated, ok := s.events.Update(ctx, id, p)
	if !ok {
		return models.Event{}, fmt.Errorf("service: event %d not found for update: %w", id, ErrNotFound)
	}
	log.Info("Event updated successfully")
	return updated, nil
}

// DeleteEvent удаляет событие
func (s *boardService) DeleteEvent(ctx context.Context, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "event",
		"method":   "DeleteEvent",
		"event_id": id,
	})
	if !s.events.Delete(ctx, id) {
		log.Warn("Attempted to delete a non-existent event")
		return fmt.Errorf("service: event %d not found for delete: %w", id, ErrNotFound)
	}
	log.Info("Event deleted successfully")
	return nil
}

// DeleteEvents удаляет набор событий и возвращает реально удалённые идентификаторы
func (s *boardService) DeleteEvents(ctx context.Context, ids []int64) ([]int64, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "event",
		"method":  "DeleteEvents",
		"count":   len(ids),
	})
	deleted := s.events.DeleteMany(ctx, ids)
	if len(deleted) == 0 {
		log.Warn("No events matched bulk delete")
		return nil, fmt.Errorf("service: no events found for delete: %w", ErrNotFound)
	}
	log.WithField("deleted", len(deleted)).Info("Events deleted successfully")
	return deleted, nil
}

// GetEvent возвращает событие по идентификатору
func (s *boardService) GetEvent(_ context.Context, id int64) (models.Event, error) {
	e, ok := s.events.Get(id)
	if !ok {
		return models.Event{}, fmt.Errorf("service: event %d: %w", id, ErrNotFound)
	}
	return e, nil
}

// ListEvents возвращает все события
func (s *boardService) ListEvents(_ context.Context) ([]models.Event, error) {
	return s.events.List(), nil
}

// VisibleEvents возвращает события, видимые данному пользователю
func (s *boardService) VisibleEvents(_ context.Context, viewer models.Viewer) ([]models.Event, error) {
	events := visibility.Filter(s.events.List(), viewer)
	s.logger.WithFields(logrus.Fields{
		"service":   "event",
		"method":    "VisibleEvents",
		"viewer_id": viewer.ID,
		"count":     len(events),
	}).Debug("Filtered events for viewer")
	return events, nil
}

// EventJoinStatus сообщает, можно ли ещё присоединиться к событию
func (s *boardService) EventJoinStatus(_ context.Context, id int64, at time.Time) (JoinStatus, error) {
	e, ok := s.events.Get(id)
	if !ok {
		return JoinStatus{}, fmt.Errorf("service: event %d: %w", id, ErrNotFound)
	}
	window := s.cfg.JoinWindow
	if window <= 0 {
		window = eligibility.DefaultJoinWindow
	}
	return JoinStatus{
		CanJoin:   eligibility.CanJoin(e.StartDate, e.StartTime, window, at),
		TimeLeft:  eligibility.TimeLeft(e.StartDate, e.StartTime, window, at),
		CheckedAt: at,
	}, nil
}
