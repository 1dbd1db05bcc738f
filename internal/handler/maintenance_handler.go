package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spacesync-api/internal/middleware"
	"github.com/noah-isme/spacesync-api/internal/service"
	appErrors "github.com/noah-isme/spacesync-api/pkg/errors"
	"github.com/noah-isme/spacesync-api/pkg/response"
)

// MaintenanceHandler exposes the maintenance request workflow.
type MaintenanceHandler struct {
	maintenance *service.MaintenanceService
}

// NewMaintenanceHandler constructs MaintenanceHandler.
func NewMaintenanceHandler(maintenance *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance}
}

// ListByRoom godoc
// @Summary List maintenance requests for a room, newest first
// @Tags Maintenance
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id}/maintenance [get]
func (h *MaintenanceHandler) ListByRoom(c *gin.Context) {
	requests, err := h.maintenance.ListByRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, nil)
}

// Report godoc
// @Summary File a maintenance request for a room
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param payload body service.ReportMaintenanceRequest true "Issue payload"
// @Success 201 {object} response.Envelope
// @Router /rooms/{id}/maintenance [post]
func (h *MaintenanceHandler) Report(c *gin.Context) {
	var req service.ReportMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	request, err := h.maintenance.Report(c.Request.Context(), c.Param("id"), req, middleware.ActorName(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, request)
}

// UpdateStatus godoc
// @Summary Move a maintenance request to another status
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body service.UpdateMaintenanceStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /maintenance/{id}/status [patch]
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateMaintenanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	request, err := h.maintenance.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}
