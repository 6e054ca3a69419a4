package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/smirnov-dev/presence_sync/internal/config"
	"github.com/smirnov-dev/presence_sync/internal/service"
)

type Handler struct {
	events    service.EventService
	locations service.LocationService
	schedules service.ScheduleService
	logger    *logrus.Logger
	validate  *validator.Validate
	cfg       *config.Config
}

func NewHandler(events service.EventService, locations service.LocationService, schedules service.ScheduleService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		events:    events,
		locations: locations,
		schedules: schedules,
		logger:    logger,
		validate:  validator.New(),
		cfg:       cfg,
	}
}

// respondServiceError переводит ошибки сервисного слоя в HTTP-статусы.
// Нарушения инвариантов не пятисотят: их чинит пользователь формы.
func respondServiceError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrDuplicateName), errors.Is(err, service.ErrGeofenceOverlap):
		log.WithError(err).Warn("Create/update rejected by uniqueness invariant")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidDateRange), errors.Is(err, service.ErrEmptyAssignment):
		log.WithError(err).Warn("Create/update rejected by validation invariant")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
