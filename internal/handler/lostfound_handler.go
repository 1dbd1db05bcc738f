package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spacesync-api/internal/service"
	appErrors "github.com/noah-isme/spacesync-api/pkg/errors"
	"github.com/noah-isme/spacesync-api/pkg/response"
)

// LostFoundHandler exposes the lost-and-found board.
type LostFoundHandler struct {
	items *service.LostFoundService
}

// NewLostFoundHandler constructs LostFoundHandler.
func NewLostFoundHandler(items *service.LostFoundService) *LostFoundHandler {
	return &LostFoundHandler{items: items}
}

// List godoc
// @Summary List lost-and-found entries, newest first
// @Tags LostFound
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /lost-found [get]
func (h *LostFoundHandler) List(c *gin.Context) {
	items, err := h.items.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Report godoc
// @Summary Register a lost or found item
// @Tags LostFound
// @Accept json
// @Produce json
// @Param payload body service.ReportLostItemRequest true "Item payload"
// @Success 201 {object} response.Envelope
// @Router /lost-found [post]
func (h *LostFoundHandler) Report(c *gin.Context) {
	var req service.ReportLostItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.items.Report(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Resolve godoc
// @Summary Mark a lost-and-found entry as resolved
// @Tags LostFound
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Envelope
// @Router /lost-found/{id}/resolve [patch]
func (h *LostFoundHandler) Resolve(c *gin.Context) {
	item, err := h.items.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}
