package events

import "time"

const EmployeeJoinedTopic = "team.membership.lifecycle.v1"

type EmployeeJoinedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	EmployeeEmail string    `json:"employee_email"`
	HREmail       string    `json:"hr_email"`
	CompanyName   string    `json:"company_name"`
	OccurredAt    time.Time `json:"occurred_at"`
}
