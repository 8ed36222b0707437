package entity

import (
	"database/sql"

	"github.com/veleo-lab/backend/pkg/enum"
)

type Role string

var (
	// RoleOrganizer creates events and issues claim codes.
	RoleOrganizer = enum.New(Role("organizer"))

	// RoleAttendee redeems claim codes for badges. The role is fixed at
	// signup and never changed by any flow.
	RoleAttendee = enum.New(Role("attendee"))
)

type User struct {
	Base

	Email          string `gorm:"uniqueIndex"`
	HashedPassword string
	Role           Role
	DisplayName    string
	WalletAddress  sql.NullString
}
