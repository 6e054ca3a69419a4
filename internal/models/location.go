package models

// Статусы локации
const (
	LocationStatusActive   = "active"
	LocationStatusInactive = "inactive"
)

// Location - именованная геозона для регулярных отметок присутствия
type Location struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	RadiusMeters int        `json:"radius_meters"`
	Status       string     `json:"status"`
	Provenance   Provenance `json:"provenance,omitempty"`
}

func (l Location) EntityID() int64    { return l.ID }
func (l Location) UniqueName() string { return l.Name }

func (l Location) WithID(id int64) Location {
	l.ID = id
	return l
}

// LocationPatch - разреженное обновление локации
type LocationPatch struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters *int     `json:"radius_meters,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

func (p LocationPatch) Apply(l Location) Location {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Latitude != nil {
		l.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		l.Longitude = *p.Longitude
	}
	if p.RadiusMeters != nil {
		l.RadiusMeters = *p.RadiusMeters
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	return l
}
