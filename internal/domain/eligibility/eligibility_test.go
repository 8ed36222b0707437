package eligibility

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/pkg/errorx"
)

func badgesFor(eventIDs ...string) []entity.Badge {
	badges := []entity.Badge{}
	for _, id := range eventIDs {
		badges = append(badges, entity.Badge{EventID: id})
	}
	return badges
}

func Test_Evaluate(t *testing.T) {
	tests := []struct {
		name     string
		event    entity.Event
		badges   []entity.Badge
		wantCode uint64
	}{
		{
			name:   "no gating",
			event:  entity.Event{},
			badges: nil,
		},
		{
			name: "reputation too low",
			event: entity.Event{
				MinReputationLevel: 3,
			},
			badges:   badgesFor("E1", "E2"),
			wantCode: uint64(errorx.ReputationTooLow),
		},
		{
			name: "reputation exactly met",
			event: entity.Event{
				MinReputationLevel: 3,
			},
			badges: badgesFor("E1", "E2", "E3"),
		},
		{
			name: "prerequisite missing",
			event: entity.Event{
				PrerequisiteEventID: sql.NullString{Valid: true, String: "E1"},
			},
			badges:   badgesFor("E2"),
			wantCode: uint64(errorx.PrerequisiteMissing),
		},
		{
			name: "prerequisite met",
			event: entity.Event{
				PrerequisiteEventID: sql.NullString{Valid: true, String: "E1"},
			},
			badges: badgesFor("E2", "E1"),
		},
		{
			name: "prerequisite checked before reputation",
			event: entity.Event{
				PrerequisiteEventID: sql.NullString{Valid: true, String: "E1"},
				MinReputationLevel:  5,
			},
			badges:   badgesFor("E2", "E3"),
			wantCode: uint64(errorx.PrerequisiteMissing),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Evaluate(&tt.event, tt.badges)
			if tt.wantCode == 0 {
				require.NoError(t, err)
				return
			}

			var errx errorx.Error
			require.ErrorAs(t, err, &errx)
			require.Equal(t, tt.wantCode, errx.Code)
		})
	}
}
