package models

import "time"

// IssueType categorises a maintenance report.
type IssueType string

const (
	IssueAC          IssueType = "AC"
	IssueElectrical  IssueType = "Electrical"
	IssuePlumbing    IssueType = "Plumbing"
	IssueFurniture   IssueType = "Furniture"
	IssueCleanliness IssueType = "Cleanliness"
	IssueOther       IssueType = "Other"
)

// Valid reports whether the value belongs to the closed IssueType set.
func (t IssueType) Valid() bool {
	switch t {
	case IssueAC, IssueElectrical, IssuePlumbing, IssueFurniture, IssueCleanliness, IssueOther:
		return true
	}
	return false
}

// RequestStatus is the lifecycle state of a maintenance request.
type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestInProgress RequestStatus = "in-progress"
	RequestResolved   RequestStatus = "resolved"
)

// Valid reports whether the value belongs to the closed RequestStatus set.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestInProgress, RequestResolved:
		return true
	}
	return false
}

// MaintenanceRequest is a reported issue for a room. Requests are created in
// pending state and are never deleted.
type MaintenanceRequest struct {
	ID          string        `db:"id" json:"id"`
	RoomID      string        `db:"room_id" json:"room_id"`
	IssueType   IssueType     `db:"issue_type" json:"issue_type"`
	Description string        `db:"description" json:"description"`
	Status      RequestStatus `db:"status" json:"status"`
	ReportedBy  string        `db:"reported_by" json:"reported_by"`
	ReportedAt  time.Time     `db:"reported_at" json:"reported_at"`
}
