package model

import (
	"time"

	"github.com/veleo-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano
const DefaultDateLayout string = "2006-01-02"

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:            user.ID,
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		Role:          string(user.Role),
		WalletAddress: user.WalletAddress.String,
	}
}

func ConvertEvent(event *entity.Event, badgeCount int64) Event {
	if event == nil {
		return Event{}
	}

	return Event{
		ID:                  event.ID,
		Name:                event.Name,
		Description:         event.Description,
		Location:            event.Location,
		StartDate:           event.StartDate.Format(DefaultDateLayout),
		EndDate:             event.EndDate.Format(DefaultDateLayout),
		Category:            string(event.Category),
		OrganizerID:         event.OrganizerID,
		OrganizerName:       event.Organizer.DisplayName,
		ImageURL:            event.ImageURL,
		MaxAttendees:        event.MaxAttendees,
		IsActive:            event.IsActive,
		PrerequisiteEventID: event.PrerequisiteEventID.String,
		MinReputationLevel:  event.MinReputationLevel,
		BadgeCount:          badgeCount,
	}
}

func ConvertClaimCode(code *entity.ClaimCode) ClaimCode {
	if code == nil {
		return ClaimCode{}
	}

	usedAt := ""
	if code.UsedAt.Valid {
		usedAt = code.UsedAt.Time.Format(DefaultTimeLayout)
	}

	return ClaimCode{
		ID:      code.ID,
		EventID: code.EventID,
		Code:    code.Code,
		Used:    code.Used,
		UsedBy:  code.UsedBy.String,
		UsedAt:  usedAt,
	}
}

func ConvertBadge(badge *entity.Badge) Badge {
	if badge == nil {
		return Badge{}
	}

	return Badge{
		ID:        badge.ID,
		TokenID:   badge.TokenID,
		UserID:    badge.UserID,
		EventID:   badge.EventID,
		EventName: badge.EventName,
		ClaimCode: badge.ClaimCode,
		Claimed:   badge.Claimed,
		ClaimedAt: badge.ClaimedAt.Format(DefaultTimeLayout),
		AleoTxID:  badge.AleoTxID.String,
	}
}
