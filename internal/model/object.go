package model

type AccessToken struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Address string `json:"address"`
}

type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name"`
	Role          string `json:"role"`
	WalletAddress string `json:"wallet_address"`
}

type Event struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	Location            string `json:"location"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	Category            string `json:"category"`
	OrganizerID         string `json:"organizer_id"`
	OrganizerName       string `json:"organizer_name"`
	ImageURL            string `json:"image_url"`
	MaxAttendees        int    `json:"max_attendees"`
	IsActive            bool   `json:"is_active"`
	PrerequisiteEventID string `json:"prerequisite_event_id"`
	MinReputationLevel  int    `json:"min_reputation_level"`
	BadgeCount          int64  `json:"badge_count"`
}

type ClaimCode struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Code    string `json:"code"`
	Used    bool   `json:"used"`
	UsedBy  string `json:"used_by"`
	UsedAt  string `json:"used_at"`
}

type Badge struct {
	ID        string `json:"id"`
	TokenID   int64  `json:"token_id"`
	UserID    string `json:"user_id"`
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`
	ClaimCode string `json:"claim_code"`
	Claimed   bool   `json:"claimed"`
	ClaimedAt string `json:"claimed_at"`
	AleoTxID  string `json:"aleo_tx_id"`
}

type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	BadgeCount  int64  `json:"badge_count"`
	Rank        uint64 `json:"rank"`
}
