package domain

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/veleo-lab/backend/internal/common"
	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/internal/model"
	"github.com/veleo-lab/backend/internal/repository"
	"github.com/veleo-lab/backend/pkg/errorx"
	"github.com/veleo-lab/backend/pkg/testutil"
	"github.com/veleo-lab/backend/pkg/xcontext"
)

func newEventDomainForTest() EventDomain {
	userRepo := repository.NewUserRepository()
	return NewEventDomain(
		repository.NewEventRepository(),
		repository.NewBadgeRepository(),
		common.NewRoleVerifier(userRepo),
	)
}

func Test_eventDomain_CreateEvent(t *testing.T) {
	ctx := testutil.MockContext()
	organizer, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	attendee, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	d := newEventDomainForTest()

	organizerCtx := xcontext.WithRequestUserID(ctx, organizer.ID)
	created, err := d.CreateEvent(organizerCtx, &model.CreateEventRequest{
		Name:      "GopherCon Hanoi",
		Location:  "Hanoi",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-02",
		Category:  "conference",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := d.GetEvent(ctx, &model.GetEventRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "GopherCon Hanoi", got.Name)
	require.Equal(t, organizer.ID, got.OrganizerID)
	require.Equal(t, organizer.DisplayName, got.OrganizerName)
	require.True(t, got.IsActive)

	attendeeCtx := xcontext.WithRequestUserID(ctx, attendee.ID)
	_, err = d.CreateEvent(attendeeCtx, &model.CreateEventRequest{
		Name:     "Sneaky Event",
		Category: "meetup",
	})
	requireErrorCode(t, err, errorx.PermissionDenied)

	_, err = d.CreateEvent(organizerCtx, &model.CreateEventRequest{
		Name:     "Bad Category",
		Category: "party",
	})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = d.CreateEvent(organizerCtx, &model.CreateEventRequest{
		Name:                "Broken Prerequisite",
		Category:            "meetup",
		PrerequisiteEventID: "does-not-exist",
	})
	requireErrorCode(t, err, errorx.NotFound)
}

func Test_eventDomain_UpdateAndSetActive(t *testing.T) {
	ctx := testutil.MockContext()
	organizer, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	stranger, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	event, err := testutil.SampleEvent(ctx, &entity.Event{OrganizerID: organizer.ID})
	require.NoError(t, err)

	d := newEventDomainForTest()

	organizerCtx := xcontext.WithRequestUserID(ctx, organizer.ID)
	_, err = d.UpdateEvent(organizerCtx, &model.UpdateEventRequest{
		ID:                 event.ID,
		Name:               "Renamed",
		MinReputationLevel: 2,
	})
	require.NoError(t, err)

	got, err := d.GetEvent(ctx, &model.GetEventRequest{ID: event.ID})
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.Equal(t, 2, got.MinReputationLevel)

	_, err = d.UpdateEvent(organizerCtx, &model.UpdateEventRequest{
		ID:                  event.ID,
		PrerequisiteEventID: event.ID,
	})
	requireErrorCode(t, err, errorx.BadRequest)

	strangerCtx := xcontext.WithRequestUserID(ctx, stranger.ID)
	_, err = d.UpdateEvent(strangerCtx, &model.UpdateEventRequest{ID: event.ID, Name: "Hacked"})
	requireErrorCode(t, err, errorx.PermissionDenied)

	_, err = d.SetEventActive(organizerCtx, &model.SetEventActiveRequest{ID: event.ID})
	require.NoError(t, err)

	got, err = d.GetEvent(ctx, &model.GetEventRequest{ID: event.ID})
	require.NoError(t, err)
	require.False(t, got.IsActive)
}

func Test_eventDomain_GetMyEvents(t *testing.T) {
	ctx := testutil.MockContext()
	organizer, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	event, err := testutil.SampleEvent(ctx, &entity.Event{OrganizerID: organizer.ID})
	require.NoError(t, err)
	_, err = testutil.SampleEvent(ctx, &entity.Event{OrganizerID: organizer.ID})
	require.NoError(t, err)
	_, err = testutil.SampleEvent(ctx, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = testutil.SampleBadge(ctx, &entity.Badge{EventID: event.ID})
		require.NoError(t, err)
	}

	d := newEventDomainForTest()

	organizerCtx := xcontext.WithRequestUserID(ctx, organizer.ID)
	resp, err := d.GetMyEvents(organizerCtx, &model.GetMyEventsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Events, 2)

	counts := map[string]int64{}
	for _, e := range resp.Events {
		counts[e.ID] = e.BadgeCount
	}
	require.Equal(t, int64(3), counts[event.ID])
}

func Test_eventDomain_DeleteEvent(t *testing.T) {
	ctx := testutil.MockContext()
	organizer, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	event, err := testutil.SampleEvent(ctx, &entity.Event{OrganizerID: organizer.ID})
	require.NoError(t, err)

	d := newEventDomainForTest()

	organizerCtx := xcontext.WithRequestUserID(ctx, organizer.ID)
	_, err = d.DeleteEvent(organizerCtx, &model.DeleteEventRequest{ID: event.ID})
	require.NoError(t, err)

	_, err = d.GetEvent(ctx, &model.GetEventRequest{ID: event.ID})
	requireErrorCode(t, err, errorx.NotFound)
}

func Test_eventDomain_SetActiveBlocksClaims(t *testing.T) {
	ctx := testutil.MockContext()
	organizer, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	attendee, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	event, err := testutil.SampleEvent(ctx, &entity.Event{
		OrganizerID:         organizer.ID,
		PrerequisiteEventID: sql.NullString{},
	})
	require.NoError(t, err)
	code, err := testutil.SampleClaimCode(ctx, &entity.ClaimCode{EventID: event.ID})
	require.NoError(t, err)

	eventDomain := newEventDomainForTest()
	organizerCtx := xcontext.WithRequestUserID(ctx, organizer.ID)
	_, err = eventDomain.SetEventActive(organizerCtx, &model.SetEventActiveRequest{ID: event.ID})
	require.NoError(t, err)

	claimDomain := newClaimCodeDomainForTest(&testutil.MockAleoCaller{}, &testutil.MockRedisClient{})
	attendeeCtx := xcontext.WithRequestUserID(ctx, attendee.ID)
	_, err = claimDomain.Claim(attendeeCtx, &model.ClaimRequest{Code: code.Code})
	requireErrorCode(t, err, errorx.Unavailable)
}
