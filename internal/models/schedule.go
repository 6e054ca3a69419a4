package models

// Schedule - график работ команды. Диапазон дат может быть открытым:
// отсутствие обеих дат означает "виден всегда".
type Schedule struct {
	ID           int64      `json:"id"`
	Team         string     `json:"team"`
	StartDate    string     `json:"start_date,omitempty"`
	EndDate      string     `json:"end_date,omitempty"`
	StartTime    string     `json:"start_time,omitempty"`
	EndTime      string     `json:"end_time,omitempty"`
	LocationID   int64      `json:"location_id,omitempty"`
	Tasks        []string   `json:"tasks,omitempty"`
	Preparations []string   `json:"preparations,omitempty"`
	Goals        []string   `json:"goals,omitempty"`
	Assignment   Assignment `json:"assignment"`
	CreatorRole  string     `json:"creator_role,omitempty"`
	Provenance   Provenance `json:"provenance,omitempty"`
}

func (s Schedule) EntityID() int64 { return s.ID }

// UniqueName пустой: у графиков нет оси уникальности по имени
func (s Schedule) UniqueName() string { return "" }

func (s Schedule) WithID(id int64) Schedule {
	s.ID = id
	return s
}

func (s Schedule) Assigned() Assignment { return s.Assignment }
func (s Schedule) Origin() Provenance   { return s.Provenance }

// SchedulePatch - разреженное обновление графика
type SchedulePatch struct {
	Team         *string     `json:"team,omitempty"`
	StartDate    *string     `json:"start_date,omitempty"`
	EndDate      *string     `json:"end_date,omitempty"`
	StartTime    *string     `json:"start_time,omitempty"`
	EndTime      *string     `json:"end_time,omitempty"`
	LocationID   *int64      `json:"location_id,omitempty"`
	Tasks        *[]string   `json:"tasks,omitempty"`
	Preparations *[]string   `json:"preparations,omitempty"`
	Goals        *[]string   `json:"goals,omitempty"`
	Assignment   *Assignment `json:"assignment,omitempty"`
	CreatorRole  *string     `json:"creator_role,omitempty"`
}

func (p SchedulePatch) Apply(s Schedule) Schedule {
	if p.Team != nil {
		s.Team = *p.Team
	}
	if p.StartDate != nil {
		s.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		s.EndDate = *p.EndDate
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
	if p.LocationID != nil {
		s.LocationID = *p.LocationID
	}
	if p.Tasks != nil {
		s.Tasks = *p.Tasks
	}
	if p.Preparations != nil {
		s.Preparations = *p.Preparations
	}
	if p.Goals != nil {
		s.Goals = *p.Goals
	}
	if p.Assignment != nil {
		s.Assignment = *p.Assignment
	}
	if p.CreatorRole != nil {
		s.CreatorRole = *p.CreatorRole
	}
	return s
}
