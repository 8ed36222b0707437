package entity

import "database/sql"

// ClaimCode is a single-use token redeemable for one badge. It is created in
// bulk by an organizer, flipped to used exactly once by a successful
// redemption, and never deleted in normal flow.
type ClaimCode struct {
	Base

	EventID string
	Event   Event `gorm:"foreignKey:EventID"`

	// The unique index makes code uniqueness a storage-level constraint
	// instead of relying on generation entropy alone.
	Code string `gorm:"uniqueIndex"`

	Used   bool
	UsedBy sql.NullString
	UsedAt sql.NullTime
}
