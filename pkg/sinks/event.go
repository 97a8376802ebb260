package sinks

import (
	"time"

	"github.com/intakehq/intake-submitter/internal/domain"
)

// Event is the receipt delivered downstream after a completed submission.
type Event struct {
	TargetID    string            `json:"target_id"`
	Submission  domain.Submission `json:"submission"`
	StatusCode  int               `json:"status_code"`
	Response    any               `json:"response,omitempty"`
	SubmittedAt time.Time         `json:"submitted_at"`
}

// NewEvent constructs an Event for the given target + submission outcome.
func NewEvent(targetID string, sub domain.Submission, statusCode int, response any) Event {
	return Event{
		TargetID:    targetID,
		Submission:  sub,
		StatusCode:  statusCode,
		Response:    response,
		SubmittedAt: time.Now().UTC(),
	}
}
