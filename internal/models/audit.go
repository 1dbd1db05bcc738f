package models

import "time"

// AuditLog is one immutable record of an administrative override change.
// Entries are never updated or deleted; listings return newest first.
type AuditLog struct {
	ID        string    `db:"id" json:"id"`
	RoomID    string    `db:"room_id" json:"room_id"`
	RoomName  string    `db:"room_name" json:"room_name"`
	Action    string    `db:"action" json:"action"`
	User      string    `db:"acting_user" json:"user"`
	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}
