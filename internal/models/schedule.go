package models

import "fmt"

// ClassSchedule is a weekly recurring class meeting in a room. Schedules are
// seeded once at startup and immutable afterwards.
type ClassSchedule struct {
	ID         string `db:"id" json:"id"`
	RoomID     string `db:"room_id" json:"room_id"`
	CourseName string `db:"course_name" json:"course_name"`
	Instructor string `db:"instructor" json:"instructor"`
	DayOfWeek  int    `db:"day_of_week" json:"day_of_week"` // 0 = Sunday
	StartTime  string `db:"start_time" json:"start_time"`   // "HH:MM", 24h clock
	EndTime    string `db:"end_time" json:"end_time"`
}

// MinuteOfDay converts an "HH:MM" clock value into minutes since midnight.
func MinuteOfDay(clock string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock value %q: %w", clock, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", clock)
	}
	return h*60 + m, nil
}

// Validate checks the schedule field invariants: a known day of week and a
// strictly positive time interval.
func (s ClassSchedule) Validate() error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week %d outside 0-6", s.DayOfWeek)
	}
	start, err := MinuteOfDay(s.StartTime)
	if err != nil {
		return err
	}
	end, err := MinuteOfDay(s.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return fmt.Errorf("schedule %s ends at or before it starts", s.ID)
	}
	return nil
}
