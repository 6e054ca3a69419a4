package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// @Summary Create a new event
// @Description Create a new check-in event. Requires API key.
// @Tags Events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param event body CreateEventRequest true "Event creation request"
// @Success 201 {object} EventResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 409 {object} map[string]string "Duplicate name"
// @Router /events [post]
func (h *Handler) createEvent(c *gin.Context) {
	var input CreateEventRequest
	log := h.logger.WithField("method", "createEvent")

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

	created, err := h.events.CreateEvent(c.Request.Context(), CreateEventDTOToModel(input))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToEventResponse(created))
}

// @Summary Get a list of events
// @Description Get all events. Requires API key.
// @Tags Events
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} EventResponse
// @Router /events [get]
func (h *Handler) listEvents(c *gin.Context) {
	log := h.logger.WithField("method", "listEvents")

	events, err := h.events.ListEvents(c.Request.Context())
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToEventResponses(events))
}

// @Summary Get events visible to a viewer
// @Description Filter events by the viewer's assignment criteria. Requires API key.
// @Tags Events
// @Produce json
// @Security ApiKeyAuth
// @Param user_id query int false "Viewer identifier"
// @Param role query string false "Viewer role" Enums(super_admin, branch_admin, employee)
// @Param department query string false "Viewer department"
// @Param position query string false "Viewer position"
// @Param province query string false "Viewer branch/province code"
// @Success 200 {array} EventResponse
// @Router /events/visible [get]
func (h *Handler) visibleEvents(c *gin.Context) {
	log := h.logger.WithField("method", "visibleEvents")

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

	events, err := h.events.VisibleEvents(c.Request.Context(), ViewerQueryToModel(q))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToEventResponses(events))
}

// @Summary Get event by ID
// @Tags Events
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Event ID"
// @Success 200 {object} EventResponse
// @Failure 404 {object} map[string]string "Event not found"
// @Router /events/{id} [get]
func (h *Handler) getEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}
	log := h.logger.WithField("method", "getEvent").WithField("id", id)

	event, err := h.events.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEventResponse(event))
}

// @Summary Check the join window of an event
// @Description Report whether a user may still join the event and the time left.
// @Tags Events
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Event ID"
// @Param at query string false "Instant to check, RFC3339 (defaults to now)"
// @Success 200 {object} JoinStatusResponse
// @Failure 404 {object} map[string]string "Event not found"
// @Router /events/{id}/join-window [get]
func (h *Handler) eventJoinWindow(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}
	log := h.logger.WithField("method", "eventJoinWindow").WithField("id", id)

	at := time.Now()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'at' instant"})
			return
		}
		at = parsed
	}

	status, err := h.events.EventJoinStatus(c.Request.Context(), id, at)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, JoinStatusToResponse(status))
}

// @Summary Update an existing event
// @Description Apply a sparse patch to an event. Absent fields stay untouched.
// @Tags Events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Event ID"
// @Param event body UpdateEventRequest true "Event patch"
// @Success 200 {object} EventResponse
// @Failure 404 {object} map[string]string "Event not found"
// @Router /events/{id} [patch]
func (h *Handler) updateEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}
	log := h.logger.WithField("method", "updateEvent").WithField("id", id)

	var input UpdateEventRequest
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

	updated, err := h.events.UpdateEvent(c.Request.Context(), id, UpdateEventDTOToPatch(input))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEventResponse(updated))
}

// @Summary Delete an event
// @Tags Events
// @Security ApiKeyAuth
// @Param id path int true "Event ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Event not found"
// @Router /events/{id} [delete]
func (h *Handler) deleteEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}
	log := h.logger.WithField("method", "deleteEvent").WithField("id", id)

	if err := h.events.DeleteEvent(c.Request.Context(), id); err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete a set of events
// @Tags Events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param ids body DeleteManyRequest true "Identifiers to delete"
// @Success 200 {object} DeleteManyResponse
// @Router /events [delete]
func (h *Handler) deleteEvents(c *gin.Context) {
	log := h.logger.WithField("method", "deleteEvents")

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

	deleted, err := h.events.DeleteEvents(c.Request.Context(), input.IDs)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, DeleteManyResponse{DeletedIDs: deleted})
}
