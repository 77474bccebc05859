package churchsdk

import "time"

// ============================================================================
// Auth Types
// ============================================================================

// User is the public projection of a member account returned by the API.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	JoinDate  time.Time `json:"joinDate"`
}

// TokenPair is the response of the refresh endpoint.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int `json:"expiresIn"`
}

// sessionResponse is the register/login response shape.
type sessionResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

// RegisterInput carries the fields for opening a new member account.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

// ProfileInput carries profile fields to update. Zero-value fields are
// omitted from the request and keep their stored value.
type ProfileInput struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ============================================================================
// Calendar Types
// ============================================================================

// Event is a church calendar entry.
type Event struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Date             time.Time `json:"date"`
	StartTime        string    `json:"startTime,omitempty"`
	EndTime          string    `json:"endTime,omitempty"`
	Location         string    `json:"location,omitempty"`
	Type             string    `json:"type"`
	Recurring        bool      `json:"recurring"`
	RecurringPattern string    `json:"recurringPattern,omitempty"`
	Public           bool      `json:"public"`
	MaxAttendees     int       `json:"maxAttendees"`
	Attendees        []string  `json:"attendees"`
	Organizer        string    `json:"organizer"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// EventInput carries the fields for creating or updating an event.
type EventInput struct {
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Date             time.Time `json:"date"`
	StartTime        string    `json:"startTime,omitempty"`
	EndTime          string    `json:"endTime,omitempty"`
	Location         string    `json:"location,omitempty"`
	Type             string    `json:"type"`
	Recurring        bool      `json:"recurring,omitempty"`
	RecurringPattern string    `json:"recurringPattern,omitempty"`
	Public           *bool     `json:"public,omitempty"`
	MaxAttendees     int       `json:"maxAttendees,omitempty"`
	Notes            string    `json:"notes,omitempty"`
}

// ============================================================================
// Sermon Types
// ============================================================================

// Sermon is an entry in the sermon archive.
type Sermon struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Scripture   string    `json:"scripture,omitempty"`
	Preacher    string    `json:"preacher"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	AudioURL    string    `json:"audioUrl,omitempty"`
	Tags        []string  `json:"tags"`
	Public      bool      `json:"public"`
	ViewCount   int       `json:"viewCount"`
	Duration    int       `json:"duration,omitempty"`
	Series      string    `json:"series,omitempty"`
	SeriesPart  int       `json:"seriesPart,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SermonInput carries the fields for archiving or updating a sermon.
type SermonInput struct {
	Title       string    `json:"title"`
	Scripture   string    `json:"scripture,omitempty"`
	Preacher    string    `json:"preacher,omitempty"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	AudioURL    string    `json:"audioUrl,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Public      *bool     `json:"public,omitempty"`
	Duration    int       `json:"duration,omitempty"`
	Series      string    `json:"series,omitempty"`
	SeriesPart  int       `json:"seriesPart,omitempty"`
}

// ============================================================================
// Prayer Request Types
// ============================================================================

// PrayerRequest is a member's prayer request. Requester is empty when the
// request is anonymous and the caller is neither the requester nor staff.
type PrayerRequest struct {
	ID          string     `json:"id"`
	Requester   string     `json:"requester,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Anonymous   bool       `json:"anonymous"`
	Urgent      bool       `json:"urgent"`
	Answered    bool       `json:"answered"`
	AnswerNotes string     `json:"answerNotes,omitempty"`
	AnsweredAt  *time.Time `json:"answeredAt,omitempty"`
	PrayerCount int        `json:"prayerCount"`
	PrayedBy    []string   `json:"prayedBy"`
	Public      bool       `json:"public"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PrayerRequestInput carries the fields for filing or updating a request.
type PrayerRequestInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Anonymous   bool       `json:"anonymous,omitempty"`
	Urgent      bool       `json:"urgent,omitempty"`
	Public      bool       `json:"public,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// ============================================================================
// System Types
// ============================================================================

// Health is the response of the health endpoints.
type Health struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
