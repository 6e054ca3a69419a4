package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary Create a new location
// @Description Create a named check-in geofence. Requires API key.
// @Tags Locations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param location body CreateLocationRequest true "Location creation request"
// @Success 201 {object} LocationResponse
// @Failure 409 {object} map[string]string "Duplicate name or overlapping geofence"
// @Router /locations [post]
func (h *Handler) createLocation(c *gin.Context) {
	var input CreateLocationRequest
	log := h.logger.WithField("method", "createLocation")

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

	created, err := h.locations.CreateLocation(c.Request.Context(), CreateLocationDTOToModel(input))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToLocationResponse(created))
}

// @Summary Get a list of locations
// @Tags Locations
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} LocationResponse
// @Router /locations [get]
func (h *Handler) listLocations(c *gin.Context) {
	log := h.logger.WithField("method", "listLocations")

	locations, err := h.locations.ListLocations(c.Request.Context())
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToLocationResponses(locations))
}

// @Summary Get location by ID
// @Tags Locations
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Location ID"
// @Success 200 {object} LocationResponse
// @Failure 404 {object} map[string]string "Location not found"
// @Router /locations/{id} [get]
func (h *Handler) getLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location ID"})
		return
	}
	log := h.logger.WithField("method", "getLocation").WithField("id", id)

	location, err := h.locations.GetLocation(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToLocationResponse(location))
}

// @Summary Update an existing location
// @Description Apply a sparse patch to a location. Absent fields stay untouched.
// @Tags Locations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Location ID"
// @Param location body UpdateLocationRequest true "Location patch"
// @Success 200 {object} LocationResponse
// @Failure 404 {object} map[string]string "Location not found"
// @Router /locations/{id} [patch]
func (h *Handler) updateLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location ID"})
		return
	}
	log := h.logger.WithField("method", "updateLocation").WithField("id", id)

	var input UpdateLocationRequest
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

	updated, err := h.locations.UpdateLocation(c.Request.Context(), id, UpdateLocationDTOToPatch(input))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToLocationResponse(updated))
}

// @Summary Delete a location
// @Tags Locations
// @Security ApiKeyAuth
// @Param id path int true "Location ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Location not found"
// @Router /locations/{id} [delete]
func (h *Handler) deleteLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location ID"})
		return
	}
	log := h.logger.WithField("method", "deleteLocation").WithField("id", id)

	if err := h.locations.DeleteLocation(c.Request.Context(), id); err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete a set of locations
// @Tags Locations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param ids body DeleteManyRequest true "Identifiers to delete"
// @Success 200 {object} DeleteManyResponse
// @Router /locations [delete]
func (h *Handler) deleteLocations(c *gin.Context) {
	log := h.logger.WithField("method", "deleteLocations")

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

	deleted, err := h.locations.DeleteLocations(c.Request.Context(), input.IDs)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, DeleteManyResponse{DeletedIDs: deleted})
}
