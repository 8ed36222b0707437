package entity

import (
	"database/sql"
	"time"
)

// Badge records one successful redemption. Immutable after creation; the
// chain transaction id stays NULL when the mint was skipped or failed.
type Badge struct {
	Base

	TokenID int64 `gorm:"uniqueIndex"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	EventID string
	Event   Event `gorm:"foreignKey:EventID"`

	// Denormalized so the portfolio renders without joining events.
	EventName string

	ClaimCode string
	Claimed   bool
	ClaimedAt time.Time
	AleoTxID  sql.NullString
}
