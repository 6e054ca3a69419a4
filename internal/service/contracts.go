package service

import (
	"context"
	"time"

	"github.com/smirnov-dev/presence_sync/internal/models"
)

//go:generate mockgen -source=contracts.go -destination=mocks/board.go -package=mocks

// EventService определяет контракт бизнес-логики событий
type EventService interface {
	CreateEvent(ctx context.Context, e models.Event) (models.Event, error)
	UpdateEvent(ctx context.Context, id int64, p models.EventPatch) (models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	DeleteEvents(ctx context.Context, ids []int64) ([]int64, error)
	GetEvent(ctx context.Context, id int64) (models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	VisibleEvents(ctx context.Context, viewer models.Viewer) ([]models.Event, error)
	EventJoinStatus(ctx context.Context, id int64, at time.Time) (JoinStatus, error)
}

// LocationService определяет контракт бизнес-логики локаций
type LocationService interface {
	CreateLocation(ctx context.Context, l models.Location) (models.Location, error)
	UpdateLocation(ctx context.Context, id int64, p models.LocationPatch) (models.Location, error)
	DeleteLocation(ctx context.Context, id int64) error
	DeleteLocations(ctx context.Context, ids []int64) ([]int64, error)
	GetLocation(ctx context.Context, id int64) (models.Location, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
}

// ScheduleService определяет контракт бизнес-логики графиков
type ScheduleService interface {
	CreateSchedule(ctx context.Context, s models.Schedule) (models.Schedule, error)
	UpdateSchedule(ctx context.Context, id int64, p models.SchedulePatch) (models.Schedule, error)
	DeleteSchedule(ctx context.Context, id int64) error
	DeleteSchedules(ctx context.Context, ids []int64) ([]int64, error)
	GetSchedule(ctx context.Context, id int64) (models.Schedule, error)
	ListSchedules(ctx context.Context) ([]models.Schedule, error)
	VisibleSchedules(ctx context.Context, viewer models.Viewer) ([]models.Schedule, error)
}
