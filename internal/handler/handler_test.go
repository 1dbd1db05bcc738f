package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spacesync-api/internal/middleware"
	"github.com/noah-isme/spacesync-api/internal/models"
	"github.com/noah-isme/spacesync-api/internal/repository"
	"github.com/noah-isme/spacesync-api/internal/service"
)

// 2026-03-02 10:30 UTC is a Monday inside the seeded Web Development slot.
func testClock() func() time.Time {
	return func() time.Time { return time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC) }
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore(0, testClock())
	rooms := []models.Room{
		{ID: "f1-r1", Name: "MB-101", Floor: 1, Capacity: 40},
		{ID: "f1-r2", Name: "MB-102", Floor: 1, Capacity: 35},
	}
	schedules := []models.ClassSchedule{
		{ID: "s1", RoomID: "f1-r1", CourseName: "Web Development", Instructor: "Dr. Smith", DayOfWeek: 1, StartTime: "10:00", EndTime: "11:30"},
	}
	items := []models.LostItem{
		{ID: "li-1", Kind: models.KindFound, ItemName: "Blue Umbrella", Location: "MB-101", Status: models.ItemOpen},
	}
	require.NoError(t, store.Seed(context.Background(), rooms, schedules, items))

	cacheSvc := service.NewCacheService(nil, nil, 0, nil, false)
	scheduleSvc := service.NewScheduleService(store, cacheSvc, 0, nil)
	roomSvc := service.NewRoomService(store, scheduleSvc, cacheSvc, time.Minute, nil, nil, testClock())
	maintenanceSvc := service.NewMaintenanceService(store, nil, nil)
	lostFoundSvc := service.NewLostFoundService(store, nil, nil)
	exportSvc := service.NewExportService(store, nil, nil, nil, testClock())

	roomHandler := NewRoomHandler(roomSvc)
	scheduleHandler := NewScheduleHandler(scheduleSvc)
	auditHandler := NewAuditHandler(roomSvc, exportSvc)
	maintenanceHandler := NewMaintenanceHandler(maintenanceSvc)
	lostFoundHandler := NewLostFoundHandler(lostFoundSvc)

	r := gin.New()
	r.Use(middleware.Actor())

	api := r.Group("/api/v1")
	api.GET("/floors", roomHandler.ListFloors)
	api.GET("/rooms/:id", roomHandler.Get)
	api.GET("/rooms/:id/schedules", scheduleHandler.ListByRoom)
	api.GET("/rooms/:id/maintenance", maintenanceHandler.ListByRoom)
	api.POST("/rooms/:id/maintenance", maintenanceHandler.Report)
	api.GET("/lost-found", lostFoundHandler.List)
	api.POST("/lost-found", lostFoundHandler.Report)

	admin := api.Group("")
	admin.Use(middleware.RequireAdmin())
	admin.PUT("/rooms/:id/override", roomHandler.SetOverride)
	admin.GET("/audit-logs", auditHandler.List)
	admin.GET("/audit-logs/export", auditHandler.Export)
	admin.GET("/audit-logs/archives", auditHandler.Archives)
	admin.PATCH("/maintenance/:id/status", maintenanceHandler.UpdateStatus)
	admin.PATCH("/lost-found/:id/resolve", lostFoundHandler.Resolve)

	return r
}

func perform(r *gin.Engine, method, path string, body string, admin bool) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("X-User-Role", "admin")
		req.Header.Set("X-User", "registrar")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope["data"]
}

func TestFloorsEndpointResolvesStatus(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodGet, "/api/v1/floors", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	floors, ok := decodeData(t, w).([]interface{})
	require.True(t, ok)
	require.Len(t, floors, 1)
	floor := floors[0].(map[string]interface{})
	rooms := floor["rooms"].([]interface{})
	require.Len(t, rooms, 2)

	first := rooms[0].(map[string]interface{})
	assert.Equal(t, "occupied", first["computed_status"])
	assert.Equal(t, "Web Development", first["current_activity"])
	second := rooms[1].(map[string]interface{})
	assert.Equal(t, "free", second["computed_status"])
}

func TestGetRoomNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodGet, "/api/v1/rooms/missing", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOverrideRequiresAdmin(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodPut, "/api/v1/rooms/f1-r1/override", `{"status":"reserved"}`, false)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOverrideRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodPut, "/api/v1/rooms/f1-r2/override", `{"status":"occupied"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	room := decodeData(t, w).(map[string]interface{})
	assert.Equal(t, "occupied", room["computed_status"])
	assert.Equal(t, "Manual Override", room["current_activity"])

	// the audit trail records the change with the acting user
	w = perform(r, http.MethodGet, "/api/v1/audit-logs", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	logs := decodeData(t, w).([]interface{})
	require.NotEmpty(t, logs)
	head := logs[0].(map[string]interface{})
	assert.Equal(t, "Manual override set to occupied", head["action"])
	assert.Equal(t, "registrar", head["user"])
	assert.Equal(t, "MB-102", head["room_name"])

	// clearing restores the schedule-derived status
	w = perform(r, http.MethodPut, "/api/v1/rooms/f1-r2/override", `{"status":null}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	room = decodeData(t, w).(map[string]interface{})
	assert.Equal(t, "free", room["computed_status"])
}

func TestOverrideRejectsBadPayload(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodPut, "/api/v1/rooms/f1-r1/override", `{"status":"closed"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPut, "/api/v1/rooms/f1-r1/override", `{"status":`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMaintenanceEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodPost, "/api/v1/rooms/f1-r1/maintenance", `{"issue_type":"AC","description":"Unit leaking near the window"}`, false)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeData(t, w).(map[string]interface{})
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, "Guest", created["reported_by"])

	id := created["id"].(string)
	w = perform(r, http.MethodPatch, "/api/v1/maintenance/"+id+"/status", `{"status":"in-progress"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeData(t, w).(map[string]interface{})
	assert.Equal(t, "in-progress", updated["status"])

	w = perform(r, http.MethodGet, "/api/v1/rooms/f1-r1/maintenance", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	requests := decodeData(t, w).([]interface{})
	assert.Len(t, requests, 1)

	// reports are accepted for room ids outside the registry
	w = perform(r, http.MethodPost, "/api/v1/rooms/f9-r9/maintenance", `{"issue_type":"AC","description":"ghost room keeps dripping"}`, false)
	require.Equal(t, http.StatusCreated, w.Code)
	ghost := decodeData(t, w).(map[string]interface{})
	assert.Equal(t, "f9-r9", ghost["room_id"])
}

func TestLostFoundEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodPost, "/api/v1/lost-found", `{"type":"lost","item_name":"Calculus Textbook","location":"Library"}`, false)
	require.Equal(t, http.StatusCreated, w.Code)

	w = perform(r, http.MethodGet, "/api/v1/lost-found", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeData(t, w).([]interface{})
	require.Len(t, items, 2)
	newest := items[0].(map[string]interface{})
	assert.Equal(t, "Calculus Textbook", newest["item_name"])

	w = perform(r, http.MethodPatch, "/api/v1/lost-found/li-1/resolve", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	resolved := decodeData(t, w).(map[string]interface{})
	assert.Equal(t, "resolved", resolved["status"])

	w = perform(r, http.MethodPost, "/api/v1/lost-found", `{"type":"stolen","item_name":"Bike","location":"Rack"}`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuditExportCSV(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodPut, "/api/v1/rooms/f1-r1/override", `{"status":"reserved"}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/api/v1/audit-logs/export?format=csv", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "audit-logs-")
	assert.Contains(t, w.Body.String(), "Manual override set to reserved")

	w = perform(r, http.MethodGet, "/api/v1/audit-logs/export?format=xlsx", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuditArchivesListing(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodGet, "/api/v1/audit-logs/archives", "", false)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// archiving is off in this router, the listing is just empty
	w = perform(r, http.MethodGet, "/api/v1/audit-logs/archives", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	names, ok := decodeData(t, w).([]interface{})
	require.True(t, ok)
	assert.Empty(t, names)
}

func TestSchedulesEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodGet, "/api/v1/rooms/f1-r1/schedules", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	schedules := decodeData(t, w).([]interface{})
	require.Len(t, schedules, 1)
	entry := schedules[0].(map[string]interface{})
	assert.Equal(t, "Web Development", entry["course_name"])
}
