package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary Create a new work schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param schedule body CreateScheduleRequest true "Schedule creation request"
// @Success 201 {object} ScheduleResponse
// @Router /schedules [post]
func (h *Handler) createSchedule(c *gin.Context) {
	var input CreateScheduleRequest
	log := h.logger.WithField("method", "createSchedule")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.schedules.CreateSchedule(c.Request.Context(), CreateScheduleDTOToModel(input))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToScheduleResponse(created))
}

// @Summary Get a list of schedules
// @Tags Schedules
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} ScheduleResponse
// @Router /schedules [get]
func (h *Handler) listSchedules(c *gin.Context) {
	log := h.logger.WithField("method", "listSchedules")

	schedules, err := h.schedules.ListSchedules(c.Request.Context())
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToScheduleResponses(schedules))
}

// @Summary Get schedules visible to a viewer
// @Tags Schedules
// @Produce json
// @Security ApiKeyAuth
// @Param user_id query int false "Viewer identifier"
// @Param role query string false "Viewer role" Enums(super_admin, branch_admin, employee)
// @Param department query string false "Viewer department"
// @Param position query string false "Viewer position"
// @Param province query string false "Viewer branch/province code"
// @Success 200 {array} ScheduleResponse
// @Router /schedules/visible [get]
func (h *Handler) visibleSchedules(c *gin.Context) {
	log := h.logger.WithField("method", "visibleSchedules")

	var q ViewerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		log.WithError(err).Warn("Failed to bind viewer query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid viewer query"})
		return
	}
	if err := h.validate.Struct(q); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedules, err := h.schedules.VisibleSchedules(c.Request.Context(), ViewerQueryToModel(q))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToScheduleResponses(schedules))
}

// @Summary Get schedule by ID
// @Tags Schedules
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} ScheduleResponse
// @Failure 404 {object} map[string]string "Schedule not found"
// @Router /schedules/{id} [get]
func (h *Handler) getSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule ID"})
		return
	}
	log := h.logger.WithField("method", "getSchedule").WithField("id", id)

	schedule, err := h.schedules.GetSchedule(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToScheduleResponse(schedule))
}

// @Summary Update an existing schedule
// @Description Apply a sparse patch to a schedule. Absent fields stay untouched.
// @Tags Schedules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Schedule ID"
// @Param schedule body UpdateScheduleRequest true "Schedule patch"
// @Success 200 {object} ScheduleResponse
// @Failure 404 {object} map[string]string "Schedule not found"
// @Router /schedules/{id} [patch]
func (h *Handler) updateSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule ID"})
		return
	}
	log := h.logger.WithField("method", "updateSchedule").WithField("id", id)

	var input UpdateScheduleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.schedules.UpdateSchedule(c.Request.Context(), id, UpdateScheduleDTOToPatch(input))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToScheduleResponse(updated))
}

// @Summary Delete a schedule
// @Tags Schedules
// @Security ApiKeyAuth
// @Param id path int true "Schedule ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Schedule not found"
// @Router /schedules/{id} [delete]
func (h *Handler) deleteSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule ID"})
		return
	}
	log := h.logger.WithField("method", "deleteSchedule").WithField("id", id)

	if err := h.schedules.DeleteSchedule(c.Request.Context(), id); err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete a set of schedules
// @Tags Schedules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param ids body DeleteManyRequest true "Identifiers to delete"
// @Success 200 {object} DeleteManyResponse
// @Router /schedules [delete]
func (h *Handler) deleteSchedules(c *gin.Context) {
	log := h.logger.WithField("method", "deleteSchedules")

	var input DeleteManyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := h.schedules.DeleteSchedules(c.Request.Context(), input.IDs)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, DeleteManyResponse{DeletedIDs: deleted})
}
