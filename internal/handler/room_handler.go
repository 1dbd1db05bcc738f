package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spacesync-api/internal/middleware"
	"github.com/noah-isme/spacesync-api/internal/service"
	appErrors "github.com/noah-isme/spacesync-api/pkg/errors"
	"github.com/noah-isme/spacesync-api/pkg/response"
)

// RoomHandler exposes room and floor endpoints.
type RoomHandler struct {
	rooms *service.RoomService
}

// NewRoomHandler constructs RoomHandler.
func NewRoomHandler(rooms *service.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// ListFloors godoc
// @Summary List floors with resolved room statuses
// @Tags Rooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /floors [get]
func (h *RoomHandler) ListFloors(c *gin.Context) {
	floors, err := h.rooms.ListFloors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, floors, nil)
}

// Get godoc
// @Summary Get a room with its resolved status
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	room, err := h.rooms.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// SetOverride godoc
// @Summary Set or clear a room's manual override
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param payload body service.SetOverrideRequest true "Override payload, null status clears"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id}/override [put]
func (h *RoomHandler) SetOverride(c *gin.Context) {
	var req service.SetOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	room, err := h.rooms.SetOverride(c.Request.Context(), c.Param("id"), req, middleware.ActorName(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}
