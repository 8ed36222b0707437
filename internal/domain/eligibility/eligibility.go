package eligibility

import (
	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/pkg/errorx"
)

// Evaluate checks whether a user holding the given badges may redeem a code
// for the event. It is a pure function, callers load the badge set from
// storage themselves.
func Evaluate(event *entity.Event, badges []entity.Badge) error {
	if event.PrerequisiteEventID.Valid {
		found := false
		for _, b := range badges {
			if b.EventID == event.PrerequisiteEventID.String {
				found = true
				break
			}
		}

		if !found {
			return errorx.New(errorx.PrerequisiteMissing,
				"You need a badge from event %s before claiming this one",
				event.PrerequisiteEventID.String)
		}
	}

	if event.MinReputationLevel > 0 && len(badges) < event.MinReputationLevel {
		return errorx.New(errorx.ReputationTooLow,
			"This event requires reputation level %d, you have %d",
			event.MinReputationLevel, len(badges))
	}

	return nil
}
