package entity

import (
	"database/sql"
	"time"

	"github.com/veleo-lab/backend/pkg/enum"
)

type EventCategory string

var (
	CategoryConference = enum.New(EventCategory("conference"))
	CategoryHackathon  = enum.New(EventCategory("hackathon"))
	CategoryMeetup     = enum.New(EventCategory("meetup"))
	CategoryWorkshop   = enum.New(EventCategory("workshop"))
)

type Event struct {
	Base

	Name        string
	Description string
	Location    string
	StartDate   time.Time
	EndDate     time.Time
	Category    EventCategory

	OrganizerID string
	Organizer   User `gorm:"foreignKey:OrganizerID"`

	ImageURL     string
	MaxAttendees int
	IsActive     bool

	// Gating rules. PrerequisiteEventID must reference an existing event;
	// this is checked at event creation, not enforced atomically.
	PrerequisiteEventID sql.NullString
	MinReputationLevel  int
}
