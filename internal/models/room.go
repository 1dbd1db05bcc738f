package models

// RoomStatus enumerates the displayable occupancy states of a room.
type RoomStatus string

const (
	StatusFree     RoomStatus = "free"
	StatusOccupied RoomStatus = "occupied"
	StatusReserved RoomStatus = "reserved"
)

// Valid reports whether the value belongs to the closed RoomStatus set.
func (s RoomStatus) Valid() bool {
	switch s {
	case StatusFree, StatusOccupied, StatusReserved:
		return true
	}
	return false
}

// Room is a physical room on a building floor. ManualOverride, when present,
// takes precedence over any schedule-derived status until cleared.
type Room struct {
	ID             string      `db:"id" json:"id"`
	Name           string      `db:"name" json:"name"`
	Floor          int         `db:"floor" json:"floor"`
	Capacity       int         `db:"capacity" json:"capacity"`
	ManualOverride *RoomStatus `db:"manual_override" json:"manual_override"`
}

// EffectiveStatus is the status actually displayed for a room at an instant,
// derived from override and schedule. It is computed per read, never stored.
type EffectiveStatus struct {
	Status   RoomStatus `json:"status"`
	Activity string     `json:"activity,omitempty"`
}

// RoomSnapshot pairs a room with its resolved effective status.
type RoomSnapshot struct {
	Room
	ComputedStatus  RoomStatus `json:"computed_status"`
	CurrentActivity string     `json:"current_activity,omitempty"`
}

// FloorData groups the rooms of one floor for the dashboard view.
type FloorData struct {
	FloorNumber int            `json:"floor_number"`
	Rooms       []RoomSnapshot `json:"rooms"`
}
