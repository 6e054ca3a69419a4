package models

// Встроенные коллекции по умолчанию. Записываются в хранилище при первом
// запуске, когда ключ коллекции ещё пуст.

func DefaultEvents() []Event {
	return []Event{
		{
			ID:           1,
			Name:         "Общее собрание",
			StartDate:    "15/01/2026",
			EndDate:      "15/01/2026",
			StartTime:    "09:00",
			EndTime:      "11:00",
			Latitude:     55.7558,
			Longitude:    37.6173,
			RadiusMeters: 100,
			Status:       EventStatusUpcoming,
			Assignment: Assignment{
				Departments: []string{"HR"},
			},
			Provenance: Provenance{CreatorID: 1},
		},
	}
}

func DefaultLocations() []Location {
	return []Location{
		{
			ID:           1,
			Name:         "Головной офис",
			Description:  "Главный вход, стойка регистрации",
			Latitude:     55.7512,
			Longitude:    37.6184,
			RadiusMeters: 150,
			Status:       LocationStatusActive,
		},
	}
}

func DefaultSchedules() []Schedule {
	return []Schedule{
		{
			ID:         1,
			Team:       "Дежурная смена",
			StartTime:  "08:00",
			EndTime:    "20:00",
			LocationID: 1,
			Tasks:      []string{"Приём посетителей"},
			Assignment: Assignment{
				Departments: []string{"Reception"},
			},
			CreatorRole: RoleSuperAdmin,
		},
	}
}
