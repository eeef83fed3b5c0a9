package events

import "time"

const ShiftSwapTopic = "hr.shift.swap.v1"

// ShiftSwapAcceptedEvent is emitted once a swap request has been accepted and
// the shift reassignments are committed.
type ShiftSwapAcceptedEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id,omitempty"`
	SwapRequestID   string    `json:"swap_request_id"`
	ShiftID         string    `json:"shift_id"`
	RequesterID     string    `json:"requester_id"`
	AcceptedBy      string    `json:"accepted_by"`
	ReturnedShiftID string    `json:"returned_shift_id,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
