package events

import "time"

const AssetAssignedTopic = "assets.assignment.lifecycle.v1"

type AssetAssignedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	AssignmentID  string    `json:"assignment_id"`
	AssetID       string    `json:"asset_id"`
	AssetName     string    `json:"asset_name"`
	EmployeeEmail string    `json:"employee_email"`
	HREmail       string    `json:"hr_email"`
	CompanyName   string    `json:"company_name"`
	OccurredAt    time.Time `json:"occurred_at"`
}
