package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/smirnov-dev/presence_sync/internal/config"
	"github.com/smirnov-dev/presence_sync/internal/eligibility"
	"github.com/smirnov-dev/presence_sync/internal/models"
	"github.com/smirnov-dev/presence_sync/internal/replicate"
)

// Нарушения инвариантов, поднимаемые до любой мутации. Пока они не
// пройдены, ничего не сохраняется и не вещается.
var (
	ErrNotFound         = errors.New("entity not found")
	ErrDuplicateName    = errors.New("name already in use")
	ErrGeofenceOverlap  = errors.New("geofence center too close to an existing one")
	ErrInvalidDateRange = errors.New("end date is before start date")
	ErrEmptyAssignment  = errors.New("assignment criteria are empty")
)

const dateLayout = "2/1/2006"

// EventCollection определяет контракт реплицируемой коллекции событий
type EventCollection interface {
	Create(ctx context.Context, e models.Event) models.Event
	Update(ctx context.Context, id int64, p replicate.Patch[models.Event]) (models.Event, bool)
	Delete(ctx context.Context, id int64) bool
	DeleteMany(ctx context.Context, ids []int64) []int64
	Get(id int64) (models.Event, bool)
	List() []models.Event
	NameExists(name string, excludeID int64) bool
}

// LocationCollection определяет контракт реплицируемой коллекции локаций
type LocationCollection interface {
	Create(ctx context.Context, l models.Location) models.Location
	Update(ctx context.Context, id int64, p replicate.Patch[models.Location]) (models.Location, bool)
	Delete(ctx context.Context, id int64) bool
	DeleteMany(ctx context.Context, ids []int64) []int64
	Get(id int64) (models.Location, bool)
	List() []models.Location
	NameExists(name string, excludeID int64) bool
}

// ScheduleCollection определяет контракт реплицируемой коллекции графиков
type ScheduleCollection interface {
	Create(ctx context.Context, s models.Schedule) models.Schedule
	Update(ctx context.Context, id int64, p replicate.Patch[models.Schedule]) (models.Schedule, bool)
	Delete(ctx context.Context, id int64) bool
	DeleteMany(ctx context.Context, ids []int64) []int64
	Get(id int64) (models.Schedule, bool)
	List() []models.Schedule
}

// JoinStatus - ответ на вопрос "можно ли ещё присоединиться"
type JoinStatus struct {
	CanJoin   bool                  `json:"can_join"`
	TimeLeft  eligibility.Remaining `json:"time_left"`
	CheckedAt time.Time             `json:"checked_at"`
}

type boardService struct {
	events    EventCollection
	locations LocationCollection
	schedules ScheduleCollection
	logger    *logrus.Logger
	cfg       *config.Config
}

// Board объединяет три сервисных контракта панели
type Board interface {
	EventService
	LocationService
	ScheduleService
}

func NewBoardService(events EventCollection, locations LocationCollection, schedules ScheduleCollection, logger *logrus.Logger, cfg *config.Config) Board {
	return &boardService{
		events:    events,
		locations: locations,
		schedules: schedules,
		logger:    logger,
		cfg:       cfg,
	}
}

// parseDate разбирает дату в форме день/месяц/год
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return t, nil
}

// checkDateOrder проверяет, что конец не раньше начала. Нечитаемые даты
// порядок не нарушают.
func checkDateOrder(startDate, endDate string) error {
	if startDate == "" || endDate == "" {
		return nil
	}
	start, err := parseDate(startDate)
	if err != nil {
		return nil
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil
	}
	if end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}
