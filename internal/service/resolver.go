package service

import (
	"time"

	"github.com/noah-isme/spacesync-api/internal/models"
)

// ManualOverrideActivity is the activity label shown when an occupied status
// comes from an override rather than a scheduled class.
const ManualOverrideActivity = "Manual Override"

// ResolveStatus computes the effective status of a room at the given
// instant. It is pure: no I/O, no clock reads, deterministic for identical
// inputs.
//
// Resolution order, first match wins:
//  1. A manual override, when present, is returned as-is. The activity label
//     is "Manual Override" only when the override is occupied.
//  2. A schedule entry on now's day of week whose [start, end) interval
//     contains now's minute of day makes the room occupied with the course
//     name as activity. When entries overlap, the earliest start minute wins
//     and ties break on the lowest schedule id, keeping the choice
//     deterministic regardless of delivery order.
//  3. Otherwise the room is free with no activity.
func ResolveStatus(room models.Room, schedules []models.ClassSchedule, now time.Time) models.EffectiveStatus {
	if room.ManualOverride != nil {
		status := models.EffectiveStatus{Status: *room.ManualOverride}
		if status.Status == models.StatusOccupied {
			status.Activity = ManualOverrideActivity
		}
		return status
	}

	day := int(now.Weekday())
	minute := now.Hour()*60 + now.Minute()

	var active *models.ClassSchedule
	activeStart := 0
	for i := range schedules {
		sched := schedules[i]
		if sched.RoomID != room.ID || sched.DayOfWeek != day {
			continue
		}
		start, err := models.MinuteOfDay(sched.StartTime)
		if err != nil {
			continue
		}
		end, err := models.MinuteOfDay(sched.EndTime)
		if err != nil {
			continue
		}
		if minute < start || minute >= end {
			continue
		}
		if active == nil || start < activeStart || (start == activeStart && sched.ID < active.ID) {
			active = &schedules[i]
			activeStart = start
		}
	}

	if active != nil {
		return models.EffectiveStatus{Status: models.StatusOccupied, Activity: active.CourseName}
	}
	return models.EffectiveStatus{Status: models.StatusFree}
}

// Snapshot combines a room with its resolved status for display.
func Snapshot(room models.Room, schedules []models.ClassSchedule, now time.Time) models.RoomSnapshot {
	effective := ResolveStatus(room, schedules, now)
	return models.RoomSnapshot{
		Room:            room,
		ComputedStatus:  effective.Status,
		CurrentActivity: effective.Activity,
	}
}
