package frontdesk

import (
	"context"
	"time"
)

// EventType names a front desk event
type EventType string

const (
	EventStudentRegistered EventType = "student.registered"
	EventStudentEnrolled   EventType = "student.enrolled"
	EventTeacherAdded      EventType = "teacher.added"
)

// Event describes a change made at the front desk. For teacher events
// Instrument carries the speciality.
type Event struct {
	Type       EventType `json:"type"`
	StudentID  int       `json:"studentId,omitempty"`
	TeacherID  int       `json:"teacherId,omitempty"`
	Name       string    `json:"name"`
	Instrument string    `json:"instrument,omitempty"`
	At         time.Time `json:"at"`
}

// Notifier receives front desk events. A failed Publish is logged by the
// Desk and never undoes the change.
type Notifier interface {
	Publish(ctx context.Context, ev Event) error
}

// NopNotifier drops every event
type NopNotifier struct{}

func (NopNotifier) Publish(context.Context, Event) error { return nil }
