package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты для управления событиями (CRUD + видимость + окно присоединения)
	events := api.Group("/events")
	{
		events.POST("", h.createEvent)
		events.GET("", h.listEvents)
		events.DELETE("", h.deleteEvents)
		events.GET("/visible", h.visibleEvents)
		events.GET("/:id", h.getEvent)
		events.GET("/:id/join-window", h.eventJoinWindow)
		events.PATCH("/:id", h.updateEvent)
		events.DELETE("/:id", h.deleteEvent)
	}

	// Маршруты для управления локациями (CRUD)
	locations := api.Group("/locations")
	{
		locations.POST("", h.createLocation)
		locations.GET("", h.listLocations)
		locations.DELETE("", h.deleteLocations)
		locations.GET("/:id", h.getLocation)
		locations.PATCH("/:id", h.updateLocation)
		locations.DELETE("/:id", h.deleteLocation)
	}

	// Маршруты для управления графиками работы (CRUD + видимость)
	schedules := api.Group("/schedules")
	{
		schedules.POST("", h.createSchedule)
		schedules.GET("", h.listSchedules)
		schedules.DELETE("", h.deleteSchedules)
		schedules.GET("/visible", h.visibleSchedules)
		schedules.GET("/:id", h.getSchedule)
		schedules.PATCH("/:id", h.updateSchedule)
		schedules.DELETE("/:id", h.deleteSchedule)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
