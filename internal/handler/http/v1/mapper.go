package v1

import (
	"github.com/smirnov-dev/presence_sync/internal/models"
	"github.com/smirnov-dev/presence_sync/internal/service"
)

// CreateEventDTOToModel преобразует DTO создания события в доменную модель
func CreateEventDTOToModel(dto CreateEventRequest) models.Event {
	return models.Event{
		Name:         dto.Name,
		StartDate:    dto.StartDate,
		EndDate:      dto.EndDate,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		RadiusMeters: dto.RadiusMeters,
		Status:       dto.Status,
		Assignment: models.Assignment{
			Users:       dto.AssignedUsers,
			Departments: dto.AssignedDepartments,
			Positions:   dto.AssignedPositions,
			Teams:       dto.AssignedTeams,
		},
		Provenance: models.Provenance{
			CreatorID: dto.CreatedBy,
			Province:  dto.Province,
		},
	}
}

// UpdateEventDTOToPatch преобразует DTO обновления события в разреженный патч
func UpdateEventDTOToPatch(dto UpdateEventRequest) models.EventPatch {
	return models.EventPatch{
		Name:         dto.Name,
		StartDate:    dto.StartDate,
		EndDate:      dto.EndDate,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		RadiusMeters: dto.RadiusMeters,
		Status:       dto.Status,
		Assignment:   dto.Assignment,
	}
}

// ModelToEventResponse преобразует доменную модель в DTO для ответа
func ModelToEventResponse(e models.Event) EventResponse {
	return EventResponse{
		ID:           e.ID,
		Name:         e.Name,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Latitude:     e.Latitude,
		Longitude:    e.Longitude,
		RadiusMeters: e.RadiusMeters,
		Status:       e.Status,
		Assignment:   e.Assignment,
		CreatedBy:    e.Provenance.CreatorID,
		Province:     e.Provenance.Province,
	}
}

// ModelsToEventResponses преобразует слайс моделей в слайс DTO
func ModelsToEventResponses(events []models.Event) []EventResponse {
	responses := make([]EventResponse, len(events))
	for i, e := range events {
		responses[i] = ModelToEventResponse(e)
	}
	return responses
}

// CreateLocationDTOToModel преобразует DTO создания локации в доменную модель
func CreateLocationDTOToModel(dto CreateLocationRequest) models.Location {
	return models.Location{
		Name:         dto.Name,
		Description:  dto.Description,
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		RadiusMeters: dto.RadiusMeters,
		Status:       dto.Status,
		Provenance: models.Provenance{
			CreatorID: dto.CreatedBy,
			Province:  dto.Province,
		},
	}
}

// UpdateLocationDTOToPatch преобразует DTO обновления локации в разреженный патч
func UpdateLocationDTOToPatch(dto UpdateLocationRequest) models.LocationPatch {
	return models.LocationPatch{
		Name:         dto.Name,
		Description:  dto.Description,
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		RadiusMeters: dto.RadiusMeters,
		Status:       dto.Status,
	}
}

// ModelToLocationResponse преобразует доменную модель в DTO для ответа
func ModelToLocationResponse(l models.Location) LocationResponse {
	return LocationResponse{
		ID:           l.ID,
		Name:         l.Name,
		Description:  l.Description,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		RadiusMeters: l.RadiusMeters,
		Status:       l.Status,
		CreatedBy:    l.Provenance.CreatorID,
		Province:     l.Provenance.Province,
	}
}

// ModelsToLocationResponses преобразует слайс моделей в слайс DTO
func ModelsToLocationResponses(locations []models.Location) []LocationResponse {
	responses := make([]LocationResponse, len(locations))
	for i, l := range locations {
		responses[i] = ModelToLocationResponse(l)
	}
	return responses
}

// CreateScheduleDTOToModel преобразует DTO создания графика в доменную модель
func CreateScheduleDTOToModel(dto CreateScheduleRequest) models.Schedule {
	return models.Schedule{
		Team:         dto.Team,
		StartDate:    dto.StartDate,
		EndDate:      dto.EndDate,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		LocationID:   dto.LocationID,
		Tasks:        dto.Tasks,
		Preparations: dto.Preparations,
		Goals:        dto.Goals,
		Assignment: models.Assignment{
			Departments: dto.AssignedDepartments,
			Positions:   dto.AssignedPositions,
		},
		CreatorRole: dto.CreatorRole,
		Provenance: models.Provenance{
			CreatorID: dto.CreatedBy,
			Province:  dto.Province,
		},
	}
}

// UpdateScheduleDTOToPatch преобразует DTO обновления графика в разреженный патч
func UpdateScheduleDTOToPatch(dto UpdateScheduleRequest) models.SchedulePatch {
	return models.SchedulePatch{
		Team:         dto.Team,
		StartDate:    dto.StartDate,
		EndDate:      dto.EndDate,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		LocationID:   dto.LocationID,
		Tasks:        dto.Tasks,
		Preparations: dto.Preparations,
		Goals:        dto.Goals,
		Assignment:   dto.Assignment,
		CreatorRole:  dto.CreatorRole,
	}
}

// ModelToScheduleResponse преобразует доменную модель в DTO для ответа
func ModelToScheduleResponse(s models.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:           s.ID,
		Team:         s.Team,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		LocationID:   s.LocationID,
		Tasks:        s.Tasks,
		Preparations: s.Preparations,
		Goals:        s.Goals,
		Assignment:   s.Assignment,
		CreatorRole:  s.CreatorRole,
		Province:     s.Provenance.Province,
	}
}

// ModelsToScheduleResponses преобразует слайс моделей в слайс DTO
func ModelsToScheduleResponses(schedules []models.Schedule) []ScheduleResponse {
	responses := make([]ScheduleResponse, len(schedules))
	for i, s := range schedules {
		responses[i] = ModelToScheduleResponse(s)
	}
	return responses
}

// ViewerQueryToModel преобразует query-параметры в описание пользователя
func ViewerQueryToModel(q ViewerQuery) models.Viewer {
	role := q.Role
	if role == "" {
		role = models.RoleEmployee
	}
	return models.Viewer{
		ID:         q.UserID,
		Role:       role,
		Department: q.Department,
		Position:   q.Position,
		Province:   q.Province,
	}
}

// JoinStatusToResponse преобразует результат проверки окна в DTO
func JoinStatusToResponse(st service.JoinStatus) JoinStatusResponse {
	return JoinStatusResponse{
		CanJoin:          st.CanJoin,
		HoursRemaining:   st.TimeLeft.Hours,
		MinutesRemaining: st.TimeLeft.Minutes,
	}
}
