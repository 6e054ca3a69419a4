package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/smirnov-dev/presence_sync/internal/models"
	"github.com/smirnov-dev/presence_sync/internal/visibility"
)

// CreateSchedule проверяет инварианты и создает график
func (s *boardService) CreateSchedule(ctx context.Context, sch models.Schedule) (models.Schedule, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "schedule",
		"method":  "CreateSchedule",
		"team":    sch.Team,
	})
	log.Info("Attempting to create a new schedule")

	if sch.Assignment.Empty() {
		log.Warn("Schedule has no assignment criteria")
		return models.Schedule{}, fmt.Errorf("service: schedule for %q: %w", sch.Team, ErrEmptyAssignment)
	}
	if err := checkDateOrder(sch.StartDate, sch.EndDate); err != nil {
		log.Warn("Schedule date range is inverted")
		return models.Schedule{}, fmt.Errorf("service: schedule for %q: %w", sch.Team, err)
	}

	created := s.schedules.Create(ctx, sch)
	log.WithField("schedule_id", created.ID).Info("Schedule created successfully")
	return created, nil
}

// UpdateSchedule накладывает разреженный патч на график
func (s *boardService) UpdateSchedule(ctx context.Context, id int64, p models.SchedulePatch) (models.Schedule, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "schedule",
		"method":      "UpdateSchedule",
		"schedule_id": id,
	})
	log.Info("Attempting to update schedule")

	existing, ok := s.schedules.Get(id)
	if !ok {
		log.Warn("Attempted to update a non-existent schedule")
		return models.Schedule{}, fmt.Errorf("service: schedule %d not found for update: %w", id, ErrNotFound)
	}
	if p.Assignment != nil && p.Assignment.Empty() {
		log.Warn("Schedule assignment patch is empty")
		return models.Schedule{}, fmt.Errorf("service: schedule %d: %w", id, ErrEmptyAssignment)
	}

	merged := p.Apply(existing)
	if err := checkDateOrder(merged.StartDate, merged.EndDate); err != nil {
		log.Warn("Schedule date range is inverted")
		return models.Schedule{}, fmt.Errorf("service: schedule %d: %w", id, err)
	}

	updated, ok := s.schedules.Update(ctx, id, p)
	if !ok {
		return models.Schedule{}, fmt.Errorf("service: schedule %d not found for update: %w", id, ErrNotFound)
	}
	log.Info("Schedule updated successfully")
	return updated, nil
}

// DeleteSchedule удаляет график
func (s *boardService) DeleteSchedule(ctx context.Context, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "schedule",
		"method":      "DeleteSchedule",
		"schedule_id": id,
	})
	if !s.schedules.Delete(ctx, id) {
		log.Warn("Attempted to delete a non-existent schedule")
		return fmt.Errorf("service: schedule %d not found for delete: %w", id, ErrNotFound)
	}
	log.Info("Schedule deleted successfully")
	return nil
}

// DeleteSchedules удаляет набор графиков
func (s *boardService) DeleteSchedules(ctx context.Context, ids []int64) ([]int64, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "schedule",
		"method":  "DeleteSchedules",
		"count":   len(ids),
	})
	deleted := s.schedules.DeleteMany(ctx, ids)
	if len(deleted) == 0 {
		log.Warn("No schedules matched bulk delete")
		return nil, fmt.Errorf("service: no schedules found for delete: %w", ErrNotFound)
	}
	log.WithField("deleted", len(deleted)).Info("Schedules deleted successfully")
	return deleted, nil
}

// GetSchedule возвращает график по идентификатору
func (s *boardService) GetSchedule(_ context.Context, id int64) (models.Schedule, error) {
	sch, ok := s.schedules.Get(id)
	if !ok {
		return models.Schedule{}, fmt.Errorf("service: schedule %d: %w", id, ErrNotFound)
	}
	return sch, nil
}

// ListSchedules возвращает все графики
func (s *boardService) ListSchedules(_ context.Context) ([]models.Schedule, error) {
	return s.schedules.List(), nil
}

// VisibleSchedules возвращает графики, видимые данному пользователю
func (s *boardService) VisibleSchedules(_ context.Context, viewer models.Viewer) ([]models.Schedule, error) {
	schedules := visibility.Filter(s.schedules.List(), viewer)
	s.logger.WithFields(logrus.Fields{
		"service":   "schedule",
		"method":    "VisibleSchedules",
		"viewer_id": viewer.ID,
		"count":     len(schedules),
	}).Debug("Filtered schedules for viewer")
	return schedules, nil
}
