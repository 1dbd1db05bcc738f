package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/spacesync-api/internal/models"
)

// 2026-03-02 is a Monday.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func webDevSchedule() []models.ClassSchedule {
	return []models.ClassSchedule{
		{ID: "s1", RoomID: "r1", CourseName: "Web Development", Instructor: "Dr. Smith", DayOfWeek: 1, StartTime: "10:00", EndTime: "11:30"},
	}
}

func TestResolveStatusScheduledClass(t *testing.T) {
	room := models.Room{ID: "r1", Name: "MB-101", Floor: 1}

	status := ResolveStatus(room, webDevSchedule(), mondayAt(10, 30))
	assert.Equal(t, models.StatusOccupied, status.Status)
	assert.Equal(t, "Web Development", status.Activity)

	status = ResolveStatus(room, webDevSchedule(), mondayAt(12, 0))
	assert.Equal(t, models.StatusFree, status.Status)
	assert.Empty(t, status.Activity)
}

func TestResolveStatusIntervalIsHalfOpen(t *testing.T) {
	room := models.Room{ID: "r1", Name: "MB-101", Floor: 1}

	status := ResolveStatus(room, webDevSchedule(), mondayAt(10, 0))
	assert.Equal(t, models.StatusOccupied, status.Status)

	status = ResolveStatus(room, webDevSchedule(), mondayAt(11, 30))
	assert.Equal(t, models.StatusFree, status.Status)
}

func TestResolveStatusIgnoresOtherDays(t *testing.T) {
	room := models.Room{ID: "r1", Name: "MB-101", Floor: 1}
	tuesday := mondayAt(10, 30).AddDate(0, 0, 1)

	status := ResolveStatus(room, webDevSchedule(), tuesday)
	assert.Equal(t, models.StatusFree, status.Status)
}

func TestResolveStatusOverrideWins(t *testing.T) {
	occupied := models.StatusOccupied
	reserved := models.StatusReserved
	free := models.StatusFree

	room := models.Room{ID: "r1", Name: "MB-101", Floor: 1, ManualOverride: &occupied}
	status := ResolveStatus(room, webDevSchedule(), mondayAt(10, 30))
	assert.Equal(t, models.StatusOccupied, status.Status)
	assert.Equal(t, ManualOverrideActivity, status.Activity)

	room.ManualOverride = &reserved
	status = ResolveStatus(room, webDevSchedule(), mondayAt(10, 30))
	assert.Equal(t, models.StatusReserved, status.Status)
	assert.Empty(t, status.Activity, "activity label applies to occupied overrides only")

	room.ManualOverride = &free
	status = ResolveStatus(room, webDevSchedule(), mondayAt(10, 30))
	assert.Equal(t, models.StatusFree, status.Status)
	assert.Empty(t, status.Activity)
}

func TestResolveStatusOverlapTieBreak(t *testing.T) {
	room := models.Room{ID: "r1", Name: "MB-101", Floor: 1}
	schedules := []models.ClassSchedule{
		{ID: "s2", RoomID: "r1", CourseName: "Databases", DayOfWeek: 1, StartTime: "10:30", EndTime: "12:00"},
		{ID: "s1", RoomID: "r1", CourseName: "Web Development", DayOfWeek: 1, StartTime: "10:00", EndTime: "11:30"},
	}

	// earliest start wins regardless of slice order
	status := ResolveStatus(room, schedules, mondayAt(11, 0))
	assert.Equal(t, "Web Development", status.Activity)

	// identical starts fall back to the lowest id
	schedules[1].StartTime = "10:30"
	status = ResolveStatus(room, schedules, mondayAt(11, 0))
	assert.Equal(t, "Web Development", status.Activity)
}

func TestResolveStatusSkipsForeignRooms(t *testing.T) {
	room := models.Room{ID: "r2", Name: "MB-102", Floor: 1}

	status := ResolveStatus(room, webDevSchedule(), mondayAt(10, 30))
	assert.Equal(t, models.StatusFree, status.Status)
}

func TestResolveStatusIsPure(t *testing.T) {
	room := models.Room{ID: "r1", Name: "MB-101", Floor: 1}
	at := mondayAt(10, 30)

	first := ResolveStatus(room, webDevSchedule(), at)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ResolveStatus(room, webDevSchedule(), at))
	}
}

func TestSnapshotCarriesRoomAndStatus(t *testing.T) {
	room := models.Room{ID: "r1", Name: "MB-101", Floor: 1, Capacity: 40}

	snap := Snapshot(room, webDevSchedule(), mondayAt(10, 30))
	assert.Equal(t, room, snap.Room)
	assert.Equal(t, models.StatusOccupied, snap.ComputedStatus)
	assert.Equal(t, "Web Development", snap.CurrentActivity)
}
