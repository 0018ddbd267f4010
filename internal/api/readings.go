package api

import (
	"net/http"

	"waterbilling/internal/service"

	"github.com/gin-gonic/gin"
)

// listReadings returns all meter readings, newest first
func (h *Handler) listReadings(c *gin.Context) {
	readings, err := h.readings.ListReadings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to fetch meter readings."})
		return
	}
	if len(readings) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No meter readings found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": readings})
}

// getReading returns a single meter reading
func (h *Handler) getReading(c *gin.Context) {
	reading, err := h.readings.GetReading(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Meter reading not found."})
		return
	}
	c.JSON(http.StatusOK, reading)
}

// getLatestReading returns the most recent reading for a meter
func (h *Handler) getLatestReading(c *gin.Context) {
	meter := c.Param("meter")
	current, date, err := h.readings.LatestReading(c.Request.Context(), meter)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No meter readings found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meter_number":    meter,
		"current_reading": current,
		"reading_date":    date,
	})
}

// createReading records a new meter reading
func (h *Handler) createReading(c *gin.Context) {
	var req service.CreateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to create meter reading. Data is incomplete."})
		return
	}

	if _, err := h.readings.CreateReading(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to create meter reading."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Meter reading was created."})
}

// updateReading updates an existing meter reading
func (h *Handler) updateReading(c *gin.Context) {
	var req service.UpdateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to update meter reading. Data is incomplete."})
		return
	}

	if _, err := h.readings.UpdateReading(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to update meter reading."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meter reading was updated."})
}

// deleteReading deletes a meter reading
func (h *Handler) deleteReading(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to delete meter reading. Data is incomplete."})
		return
	}

	if err := h.readings.DeleteReading(c.Request.Context(), req.ID); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to delete meter reading."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meter reading was deleted."})
}
