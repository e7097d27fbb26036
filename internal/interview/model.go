package interview

import "time"

const (
	TypePhone    = "phone"
	TypeVideo    = "video"
	TypeInPerson = "in-person"
	TypePanel    = "panel"
)

const (
	StatusScheduled   = "scheduled"
	StatusConfirmed   = "confirmed"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
)

// Interview is one scheduled interview round attached to an application.
// The record is owned by the upstream API.
type Interview struct {
	ID               int       `json:"id"`
	JobApplicationID int       `json:"job_application_id" validate:"required"`
	InterviewType    string    `json:"interview_type" validate:"required,oneof=phone video in-person panel"`
	ScheduledAt      time.Time `json:"scheduled_at" validate:"required,futuretime"`
	DurationMinutes  int       `json:"duration_minutes" validate:"omitempty,min=5,max=480"`
	MeetingLink      string    `json:"meeting_link" validate:"required_if=InterviewType video,omitempty,url"`
	Location         string    `json:"location" validate:"required_if=InterviewType in-person"`
	InterviewerName  string    `json:"interviewer_name"`
	InterviewerEmail string    `json:"interviewer_email" validate:"omitempty,email"`
	Notes            string    `json:"notes"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

var types = []string{TypePhone, TypeVideo, TypeInPerson, TypePanel}

// Types returns the interview type vocabulary in display order.
func Types() []string {
	out := make([]string, len(types))
	copy(out, types)
	return out
}

func IsValidType(t string) bool {
	for _, known := range types {
		if known == t {
			return true
		}
	}
	return false
}

// HasUpcoming reports whether any interview is still ahead of now and not
// cancelled. It is recomputed from the full list after every change.
func HasUpcoming(interviews []Interview, now time.Time) bool {
	for _, iv := range interviews {
		if iv.Status == StatusCancelled {
			continue
		}
		if iv.ScheduledAt.After(now) {
			return true
		}
	}
	return false
}
