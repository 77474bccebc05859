package domain

import "time"

// PrayerCategory classifies a prayer request.
type PrayerCategory string

const (
	PrayerPersonal  PrayerCategory = "personal"
	PrayerFamily    PrayerCategory = "family"
	PrayerChurch    PrayerCategory = "church"
	PrayerCommunity PrayerCategory = "community"
	PrayerWorld     PrayerCategory = "world"
)

func (c PrayerCategory) Valid() bool {
	switch c {
	case PrayerPersonal, PrayerFamily, PrayerChurch, PrayerCommunity, PrayerWorld:
		return true
	}
	return false
}

// PrayerRequest models a member's prayer request. Requests are member-only;
// anonymous ones hide the requester from other members but not from the
// record itself.
type PrayerRequest struct {
	ID          string
	Requester   string // user id
	Title       string
	Description string
	Category    PrayerCategory
	Anonymous   bool
	Urgent      bool
	Answered    bool
	AnswerNotes string
	AnsweredAt  *time.Time
	PrayerCount int
	PrayedBy    []string
	Public      bool
	ExpiresAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPrayed reports whether the user has already prayed for this request.
func (p PrayerRequest) HasPrayed(userID string) bool {
	for _, id := range p.PrayedBy {
		if id == userID {
			return true
		}
	}
	return false
}
