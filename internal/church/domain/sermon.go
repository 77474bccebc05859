package domain

import "time"

// Sermon models a recorded or transcribed sermon in the archive.
type Sermon struct {
	ID          string
	Title       string
	Scripture   string
	Preacher    string // user id
	Date        time.Time
	Description string
	VideoURL    string
	AudioURL    string
	Tags        []string
	Public      bool
	ViewCount   int
	Duration    int // minutes
	Series      string
	SeriesPart  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
