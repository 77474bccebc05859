package domain

import "time"

// EventType categorizes a church event.
type EventType string

const (
	EventService       EventType = "service"
	EventBibleStudy    EventType = "bible-study"
	EventPrayerMeeting EventType = "prayer-meeting"
	EventYouthGroup    EventType = "youth-group"
	EventOutreach      EventType = "outreach"
	EventSpecial       EventType = "special-event"
)

func (t EventType) Valid() bool {
	switch t {
	case EventService, EventBibleStudy, EventPrayerMeeting, EventYouthGroup,
		EventOutreach, EventSpecial:
		return true
	}
	return false
}

// RecurringPattern describes how a recurring event repeats.
type RecurringPattern string

const (
	RecurWeekly  RecurringPattern = "weekly"
	RecurMonthly RecurringPattern = "monthly"
	RecurYearly  RecurringPattern = "yearly"
)

func (p RecurringPattern) Valid() bool {
	switch p {
	case RecurWeekly, RecurMonthly, RecurYearly:
		return true
	}
	return false
}

// Event models an entry on the church calendar. Public events are visible to
// anonymous callers; member-only events require an authenticated identity.
type Event struct {
	ID               string
	Title            string
	Description      string
	Date             time.Time
	StartTime        string
	EndTime          string
	Location         string
	Type             EventType
	Recurring        bool
	RecurringPattern RecurringPattern
	Public           bool
	MaxAttendees     int // 0 means unlimited
	Attendees        []string
	Organizer        string // user id
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Full reports whether the event has reached its attendee cap.
func (e Event) Full() bool {
	return e.MaxAttendees > 0 && len(e.Attendees) >= e.MaxAttendees
}

// HasAttendee reports whether the user has already joined.
func (e Event) HasAttendee(userID string) bool {
	for _, id := range e.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}
