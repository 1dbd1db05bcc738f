package models

import "time"

// ItemKind distinguishes a lost report from a found report.
type ItemKind string

const (
	KindLost  ItemKind = "lost"
	KindFound ItemKind = "found"
)

// Valid reports whether the value belongs to the closed ItemKind set.
func (k ItemKind) Valid() bool {
	return k == KindLost || k == KindFound
}

// ItemStatus is the two-state lifecycle of a lost-and-found entry.
type ItemStatus string

const (
	ItemOpen     ItemStatus = "open"
	ItemResolved ItemStatus = "resolved"
)

// Valid reports whether the value belongs to the closed ItemStatus set.
func (s ItemStatus) Valid() bool {
	return s == ItemOpen || s == ItemResolved
}

// LostItem is a lost-and-found registry entry. Items open as "open" and can
// only move to "resolved"; resolving again is a no-op.
type LostItem struct {
	ID          string     `db:"id" json:"id"`
	Kind        ItemKind   `db:"kind" json:"type"`
	ItemName    string     `db:"item_name" json:"item_name"`
	Description string     `db:"description" json:"description"`
	Location    string     `db:"location" json:"location"`
	ContactInfo string     `db:"contact_info" json:"contact_info"`
	Status      ItemStatus `db:"status" json:"status"`
	ReportedAt  time.Time  `db:"reported_at" json:"date"`
}
