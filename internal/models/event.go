package models

// Статусы события
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
)

// Event - событие с геозоной для отметки присутствия.
// Даты хранятся строками в форме день/месяц/год, время - чч:мм.
type Event struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date,omitempty"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time,omitempty"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	RadiusMeters int        `json:"radius_meters"`
	Status       string     `json:"status"`
	Assignment   Assignment `json:"assignment"`
	Provenance   Provenance `json:"provenance"`
}

func (e Event) EntityID() int64 { return e.ID }

// UniqueName - ось уникальности имени (регистронезависимая, с обрезкой пробелов)
func (e Event) UniqueName() string { return e.Name }

func (e Event) WithID(id int64) Event {
	e.ID = id
	return e
}

// Assigned и Origin реализуют цель предиката видимости
func (e Event) Assigned() Assignment { return e.Assignment }
func (e Event) Origin() Provenance   { return e.Provenance }

// EventPatch - разреженное обновление события: nil-поля не трогаются
type EventPatch struct {
	Name         *string     `json:"name,omitempty"`
	StartDate    *string     `json:"start_date,omitempty"`
	EndDate      *string     `json:"end_date,omitempty"`
	StartTime    *string     `json:"start_time,omitempty"`
	EndTime      *string     `json:"end_time,omitempty"`
	Latitude     *float64    `json:"latitude,omitempty"`
	Longitude    *float64    `json:"longitude,omitempty"`
	RadiusMeters *int        `json:"radius_meters,omitempty"`
	Status       *string     `json:"status,omitempty"`
	Assignment   *Assignment `json:"assignment,omitempty"`
}

// Apply накладывает патч и возвращает новое значение, не изменяя исходное
func (p EventPatch) Apply(e Event) Event {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Latitude != nil {
		e.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		e.Longitude = *p.Longitude
	}
	if p.RadiusMeters != nil {
		e.RadiusMeters = *p.RadiusMeters
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.Assignment != nil {
		e.Assignment = *p.Assignment
	}
	return e
}
