package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spacesync-api/internal/service"
	"github.com/noah-isme/spacesync-api/pkg/response"
)

// AuditHandler exposes the override audit trail.
type AuditHandler struct {
	rooms   *service.RoomService
	exports *service.ExportService
}

// NewAuditHandler constructs AuditHandler.
func NewAuditHandler(rooms *service.RoomService, exports *service.ExportService) *AuditHandler {
	return &AuditHandler{rooms: rooms, exports: exports}
}

// List godoc
// @Summary List override audit entries, newest first
// @Tags Audit
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, pagination, err := h.rooms.ListAuditLogs(c.Request.Context(), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs, pagination)
}

// Export godoc
// @Summary Download the full audit trail
// @Tags Audit
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /audit-logs/export [get]
func (h *AuditHandler) Export(c *gin.Context) {
	doc, err := h.exports.AuditLogs(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}

// Archives godoc
// @Summary List export files retained by the archive worker
// @Tags Audit
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /audit-logs/archives [get]
func (h *AuditHandler) Archives(c *gin.Context) {
	names, err := h.exports.Archives()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, names, nil)
}
