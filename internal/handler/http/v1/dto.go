package v1

import (
	"github.com/smirnov-dev/presence_sync/internal/models"
)

// CreateEventRequest DTO для создания события
type CreateEventRequest struct {
	Name                string           `json:"name" validate:"required,min=2,max=255"`
	StartDate           string           `json:"start_date" validate:"required"`
	EndDate             string           `json:"end_date,omitempty"`
	StartTime           string           `json:"start_time" validate:"required"`
	EndTime             string           `json:"end_time,omitempty"`
	Latitude            float64          `json:"latitude" validate:"required,latitude"`
	Longitude           float64          `json:"longitude" validate:"required,longitude"`
	RadiusMeters        int              `json:"radius_meters" validate:"required,gt=0"`
	Status              string           `json:"status,omitempty" validate:"omitempty,oneof=upcoming ongoing completed"`
	AssignedUsers       []models.UserRef `json:"assigned_users,omitempty"`
	AssignedDepartments []string         `json:"assigned_departments,omitempty"`
	AssignedPositions   []string         `json:"assigned_positions,omitempty"`
	AssignedTeams       []string         `json:"assigned_teams,omitempty"`
	CreatedBy           int64            `json:"created_by,omitempty"`
	Province            string           `json:"province,omitempty"`
}

// UpdateEventRequest DTO для частичного обновления события: отсутствующие
// поля не трогаются
type UpdateEventRequest struct {
	Name         *string            `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	StartDate    *string            `json:"start_date,omitempty"`
	EndDate      *string            `json:"end_date,omitempty"`
	StartTime    *string            `json:"start_time,omitempty"`
	EndTime      *string            `json:"end_time,omitempty"`
	Latitude     *float64           `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64           `json:"longitude,omitempty" validate:"omitempty,longitude"`
	RadiusMeters *int               `json:"radius_meters,omitempty" validate:"omitempty,gt=0"`
	Status       *string            `json:"status,omitempty" validate:"omitempty,oneof=upcoming ongoing completed"`
	Assignment   *models.Assignment `json:"assignment,omitempty"`
}

// EventResponse DTO для ответа с информацией о событии
type EventResponse struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date,omitempty"`
	StartTime    string            `json:"start_time"`
	EndTime      string            `json:"end_time,omitempty"`
	Latitude     float64           `json:"latitude"`
	Longitude    float64           `json:"longitude"`
	RadiusMeters int               `json:"radius_meters"`
	Status       string            `json:"status"`
	Assignment   models.Assignment `json:"assignment"`
	CreatedBy    int64             `json:"created_by,omitempty"`
	Province     string            `json:"province,omitempty"`
}

// CreateLocationRequest DTO для создания локации
type CreateLocationRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=255"`
	Description  string  `json:"description,omitempty"`
	Latitude     float64 `json:"latitude" validate:"required,latitude"`
	Longitude    float64 `json:"longitude" validate:"required,longitude"`
	RadiusMeters int     `json:"radius_meters" validate:"required,gt=0"`
	Status       string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	CreatedBy    int64   `json:"created_by,omitempty"`
	Province     string  `json:"province,omitempty"`
}

// UpdateLocationRequest DTO для частичного обновления локации
type UpdateLocationRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description  *string  `json:"description,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	RadiusMeters *int     `json:"radius_meters,omitempty" validate:"omitempty,gt=0"`
	Status       *string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// LocationResponse DTO для ответа с информацией о локации
type LocationResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
	Status       string  `json:"status"`
	CreatedBy    int64   `json:"created_by,omitempty"`
	Province     string  `json:"province,omitempty"`
}

// CreateScheduleRequest DTO для создания графика
type CreateScheduleRequest struct {
	Team                string   `json:"team" validate:"required,min=2,max=255"`
	StartDate           string   `json:"start_date,omitempty"`
	EndDate             string   `json:"end_date,omitempty"`
	StartTime           string   `json:"start_time,omitempty"`
	EndTime             string   `json:"end_time,omitempty"`
	LocationID          int64    `json:"location_id,omitempty"`
	Tasks               []string `json:"tasks,omitempty"`
	Preparations        []string `json:"preparations,omitempty"`
	Goals               []string `json:"goals,omitempty"`
	AssignedDepartments []string `json:"assigned_departments,omitempty"`
	AssignedPositions   []string `json:"assigned_positions,omitempty"`
	CreatorRole         string   `json:"creator_role,omitempty"`
	CreatedBy           int64    `json:"created_by,omitempty"`
	Province            string   `json:"province,omitempty"`
}

// UpdateScheduleRequest DTO для частичного обновления графика
type UpdateScheduleRequest struct {
	Team         *string            `json:"team,omitempty" validate:"omitempty,min=2,max=255"`
	StartDate    *string            `json:"start_date,omitempty"`
	EndDate      *string            `json:"end_date,omitempty"`
	StartTime    *string            `json:"start_time,omitempty"`
	EndTime      *string            `json:"end_time,omitempty"`
	LocationID   *int64             `json:"location_id,omitempty"`
	Tasks        *[]string          `json:"tasks,omitempty"`
	Preparations *[]string          `json:"preparations,omitempty"`
	Goals        *[]string          `json:"goals,omitempty"`
	Assignment   *models.Assignment `json:"assignment,omitempty"`
	CreatorRole  *string            `json:"creator_role,omitempty"`
}

// ScheduleResponse DTO для ответа с информацией о графике
type ScheduleResponse struct {
	ID           int64             `json:"id"`
	Team         string            `json:"team"`
	StartDate    string            `json:"start_date,omitempty"`
	EndDate      string            `json:"end_date,omitempty"`
	StartTime    string            `json:"start_time,omitempty"`
	EndTime      string            `json:"end_time,omitempty"`
	LocationID   int64             `json:"location_id,omitempty"`
	Tasks        []string          `json:"tasks,omitempty"`
	Preparations []string          `json:"preparations,omitempty"`
	Goals        []string          `json:"goals,omitempty"`
	Assignment   models.Assignment `json:"assignment"`
	CreatorRole  string            `json:"creator_role,omitempty"`
	Province     string            `json:"province,omitempty"`
}

// DeleteManyRequest DTO для пакетного удаления
type DeleteManyRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

// DeleteManyResponse DTO с реально удалёнными идентификаторами
type DeleteManyResponse struct {
	DeletedIDs []int64 `json:"deleted_ids"`
}

// ViewerQuery - описание смотрящего пользователя из query-параметров
type ViewerQuery struct {
	UserID     int64  `form:"user_id"`
	Role       string `form:"role" validate:"omitempty,oneof=super_admin branch_admin employee"`
	Department string `form:"department"`
	Position   string `form:"position"`
	Province   string `form:"province"`
}

// JoinStatusResponse DTO для ответа о возможности присоединения
type JoinStatusResponse struct {
	CanJoin          bool `json:"can_join"`
	HoursRemaining   int  `json:"hours_remaining"`
	MinutesRemaining int  `json:"minutes_remaining"`
}
