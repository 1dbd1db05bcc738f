package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spacesync-api/internal/service"
	"github.com/noah-isme/spacesync-api/pkg/response"
)

// ScheduleHandler exposes the weekly room schedules.
type ScheduleHandler struct {
	schedules *service.ScheduleService
}

// NewScheduleHandler constructs ScheduleHandler.
func NewScheduleHandler(schedules *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// ListByRoom godoc
// @Summary List the weekly schedule for a room
// @Tags Schedules
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id}/schedules [get]
func (h *ScheduleHandler) ListByRoom(c *gin.Context) {
	schedules, err := h.schedules.ListByRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, nil)
}
