package domain

import (
	"context"
	"database/sql"
	"errors"
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

func newClaimCodeDomainForTest(
	aleoCaller *testutil.MockAleoCaller,
	redisClient *testutil.MockRedisClient,
) ClaimCodeDomain {
	userRepo := repository.NewUserRepository()
	return NewClaimCodeDomain(
		repository.NewClaimCodeRepository(),
		repository.NewEventRepository(),
		repository.NewBadgeRepository(),
		userRepo,
		common.NewRoleVerifier(userRepo),
		aleoCaller,
		redisClient,
	)
}

func requireErrorCode(t *testing.T, err error, code errorx.Code) {
	t.Helper()
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, uint64(code), errx.Code)
}

func Test_claimCodeDomain_GenerateAndClaim(t *testing.T) {
	ctx := testutil.MockContext()
	organizer, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	attendee, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	event, err := testutil.SampleEvent(ctx, &entity.Event{OrganizerID: organizer.ID})
	require.NoError(t, err)

	d := newClaimCodeDomainForTest(&testutil.MockAleoCaller{}, &testutil.MockRedisClient{})

	organizerCtx := xcontext.WithRequestUserID(ctx, organizer.ID)
	generated, err := d.GenerateClaimCodes(organizerCtx, &model.GenerateClaimCodesRequest{
		EventID: event.ID,
		Number:  10,
	})
	require.NoError(t, err)
	require.Len(t, generated.Codes, 10)

	// Redeem one code as attendee. No wallet is connected, so the chain
	// submission is skipped and the tx id stays empty.
	attendeeCtx := xcontext.WithRequestUserID(ctx, attendee.ID)
	claimed, err := d.Claim(attendeeCtx, &model.ClaimRequest{Code: generated.Codes[0]})
	require.NoError(t, err)
	require.Equal(t, attendee.ID, claimed.Badge.UserID)
	require.Equal(t, event.ID, claimed.Badge.EventID)
	require.Equal(t, event.Name, claimed.Badge.EventName)
	require.True(t, claimed.Badge.Claimed)
	require.NotZero(t, claimed.Badge.TokenID)
	require.Empty(t, claimed.Badge.AleoTxID)

	claimCodeRepo := repository.NewClaimCodeRepository()
	unused, err := claimCodeRepo.CountUnusedByEventID(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, int64(9), unused)

	record, err := claimCodeRepo.GetByCode(ctx, generated.Codes[0])
	require.NoError(t, err)
	require.True(t, record.Used)
	require.Equal(t, attendee.ID, record.UsedBy.String)

	// A second redemption of the same code always fails and never creates a
	// second badge.
	other, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	otherCtx := xcontext.WithRequestUserID(ctx, other.ID)
	_, err = d.Claim(otherCtx, &model.ClaimRequest{Code: generated.Codes[0]})
	requireErrorCode(t, err, errorx.InvalidOrUsedCode)

	badgeRepo := repository.NewBadgeRepository()
	count, err := badgeRepo.CountByEventID(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func Test_claimCodeDomain_Claim_chainSubmission(t *testing.T) {
	ctx := testutil.MockContext()
	organizer, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	event, err := testutil.SampleEvent(ctx, &entity.Event{OrganizerID: organizer.ID})
	require.NoError(t, err)
	attendee, err := testutil.SampleUser(ctx, &entity.User{
		WalletAddress: sql.NullString{Valid: true, String: "aleo1qqq"},
	})
	require.NoError(t, err)

	code, err := testutil.SampleClaimCode(ctx, &entity.ClaimCode{EventID: event.ID})
	require.NoError(t, err)

	var gotAddress, gotEvent, gotCode string
	d := newClaimCodeDomainForTest(&testutil.MockAleoCaller{
		SubmitClaimFunc: func(ctx context.Context, address, eventID, c string, claimedAtMs int64) (string, error) {
			gotAddress, gotEvent, gotCode = address, eventID, c
			return "at1txid", nil
		},
	}, &testutil.MockRedisClient{})

	attendeeCtx := xcontext.WithRequestUserID(ctx, attendee.ID)
	claimed, err := d.Claim(attendeeCtx, &model.ClaimRequest{Code: code.Code})
	require.NoError(t, err)
	require.Equal(t, "at1txid", claimed.Badge.AleoTxID)
	require.Equal(t, "aleo1qqq", gotAddress)
	require.Equal(t, event.ID, gotEvent)
	require.Equal(t, code.Code, gotCode)
}

func Test_claimCodeDomain_Claim_chainFailureIsNotFatal(t *testing.T) {
	ctx := testutil.MockContext()
	organizer, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	event, err := testutil.SampleEvent(ctx, &entity.Event{OrganizerID: organizer.ID})
	require.NoError(t, err)
	attendee, err := testutil.SampleUser(ctx, &entity.User{
		WalletAddress: sql.NullString{Valid: true, String: "aleo1qqq"},
	})
	require.NoError(t, err)

	code, err := testutil.SampleClaimCode(ctx, &entity.ClaimCode{EventID: event.ID})
	require.NoError(t, err)

	// The default mock always fails, the badge must still be written.
	d := newClaimCodeDomainForTest(&testutil.MockAleoCaller{}, &testutil.MockRedisClient{})

	attendeeCtx := xcontext.WithRequestUserID(ctx, attendee.ID)
	claimed, err := d.Claim(attendeeCtx, &model.ClaimRequest{Code: code.Code})
	require.NoError(t, err)
	require.Empty(t, claimed.Badge.AleoTxID)

	badge, err := repository.NewBadgeRepository().GetByUserAndEvent(ctx, attendee.ID, event.ID)
	require.NoError(t, err)
	require.False(t, badge.AleoTxID.Valid)
}

func Test_claimCodeDomain_Claim_eligibilityGating(t *testing.T) {
	ctx := testutil.MockContext()
	organizer, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	attendee, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	attendeeCtx := xcontext.WithRequestUserID(ctx, attendee.ID)

	d := newClaimCodeDomainForTest(&testutil.MockAleoCaller{}, &testutil.MockRedisClient{})

	prerequisite, err := testutil.SampleEvent(ctx, &entity.Event{OrganizerID: organizer.ID})
	require.NoError(t, err)
	gated, err := testutil.SampleEvent(ctx, &entity.Event{
		OrganizerID:         organizer.ID,
		PrerequisiteEventID: sql.NullString{Valid: true, String: prerequisite.ID},
	})
	require.NoError(t, err)

	code, err := testutil.SampleClaimCode(ctx, &entity.ClaimCode{EventID: gated.ID})
	require.NoError(t, err)
	_, err = d.Claim(attendeeCtx, &model.ClaimRequest{Code: code.Code})
	requireErrorCode(t, err, errorx.PrerequisiteMissing)

	// Earning the prerequisite badge flips the result.
	_, err = testutil.SampleBadge(ctx, &entity.Badge{
		UserID:  attendee.ID,
		EventID: prerequisite.ID,
	})
	require.NoError(t, err)
	_, err = d.Claim(attendeeCtx, &model.ClaimRequest{Code: code.Code})
	require.NoError(t, err)

	reputationGated, err := testutil.SampleEvent(ctx, &entity.Event{
		OrganizerID:        organizer.ID,
		MinReputationLevel: 3,
	})
	require.NoError(t, err)
	code2, err := testutil.SampleClaimCode(ctx, &entity.ClaimCode{EventID: reputationGated.ID})
	require.NoError(t, err)

	// The attendee holds two badges now, one short of the requirement.
	_, err = d.Claim(attendeeCtx, &model.ClaimRequest{Code: code2.Code})
	requireErrorCode(t, err, errorx.ReputationTooLow)

	_, err = testutil.SampleBadge(ctx, &entity.Badge{UserID: attendee.ID})
	require.NoError(t, err)
	_, err = d.Claim(attendeeCtx, &model.ClaimRequest{Code: code2.Code})
	require.NoError(t, err)
}

func Test_claimCodeDomain_Claim_requiresAuthentication(t *testing.T) {
	ctx := testutil.MockContext()
	d := newClaimCodeDomainForTest(&testutil.MockAleoCaller{}, &testutil.MockRedisClient{})

	_, err := d.Claim(ctx, &model.ClaimRequest{Code: "LEO-A1B2-LX3K9P-7QZ2MN"})
	requireErrorCode(t, err, errorx.Unauthenticated)
}

func Test_claimCodeDomain_Claim_duplicateBadge(t *testing.T) {
	ctx := testutil.MockContext()
	organizer, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	attendee, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	event, err := testutil.SampleEvent(ctx, &entity.Event{OrganizerID: organizer.ID})
	require.NoError(t, err)

	_, err = testutil.SampleBadge(ctx, &entity.Badge{UserID: attendee.ID, EventID: event.ID})
	require.NoError(t, err)
	code, err := testutil.SampleClaimCode(ctx, &entity.ClaimCode{EventID: event.ID})
	require.NoError(t, err)

	d := newClaimCodeDomainForTest(&testutil.MockAleoCaller{}, &testutil.MockRedisClient{})
	attendeeCtx := xcontext.WithRequestUserID(ctx, attendee.ID)
	_, err = d.Claim(attendeeCtx, &model.ClaimRequest{Code: code.Code})
	requireErrorCode(t, err, errorx.AlreadyExists)
}

func Test_claimCodeDomain_GenerateClaimCodes_permission(t *testing.T) {
	ctx := testutil.MockContext()
	organizer, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	attendee, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	event, err := testutil.SampleEvent(ctx, &entity.Event{OrganizerID: organizer.ID})
	require.NoError(t, err)

	d := newClaimCodeDomainForTest(&testutil.MockAleoCaller{}, &testutil.MockRedisClient{})

	attendeeCtx := xcontext.WithRequestUserID(ctx, attendee.ID)
	_, err = d.GenerateClaimCodes(attendeeCtx, &model.GenerateClaimCodesRequest{
		EventID: event.ID,
		Number:  5,
	})
	requireErrorCode(t, err, errorx.PermissionDenied)

	// Another organizer cannot issue codes for an event they do not own.
	stranger, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	strangerCtx := xcontext.WithRequestUserID(ctx, stranger.ID)
	_, err = d.GenerateClaimCodes(strangerCtx, &model.GenerateClaimCodesRequest{
		EventID: event.ID,
		Number:  5,
	})
	requireErrorCode(t, err, errorx.PermissionDenied)
}

func Test_claimCodeDomain_ValidateClaimCode(t *testing.T) {
	ctx := testutil.MockContext()
	organizer, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	event, err := testutil.SampleEvent(ctx, &entity.Event{OrganizerID: organizer.ID})
	require.NoError(t, err)
	code, err := testutil.SampleClaimCode(ctx, &entity.ClaimCode{EventID: event.ID})
	require.NoError(t, err)

	d := newClaimCodeDomainForTest(&testutil.MockAleoCaller{}, &testutil.MockRedisClient{})

	resp, err := d.ValidateClaimCode(ctx, &model.ValidateClaimCodeRequest{Code: code.Code})
	require.NoError(t, err)
	require.True(t, resp.Valid)
	require.Equal(t, event.ID, resp.EventID)
	require.Equal(t, event.Name, resp.EventName)

	resp, err = d.ValidateClaimCode(ctx, &model.ValidateClaimCodeRequest{Code: "not-a-code"})
	require.NoError(t, err)
	require.False(t, resp.Valid)

	resp, err = d.ValidateClaimCode(ctx, &model.ValidateClaimCodeRequest{
		Code: "LEO-ZZZZ-ZZZZZZ-ZZZZZZ",
	})
	require.NoError(t, err)
	require.False(t, resp.Valid)
}

func Test_claimCodeDomain_Claim_releasesInflightCode(t *testing.T) {
	ctx := testutil.MockContext()
	organizer, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)
	attendee, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	d := newClaimCodeDomainForTest(&testutil.MockAleoCaller{}, &testutil.MockRedisClient{})
	attendeeCtx := xcontext.WithRequestUserID(ctx, attendee.ID)

	// Each redemption parks the code in the in-flight set and must release
	// it on the way out, so back-to-back claims by one user keep working.
	for i := 0; i < 2; i++ {
		event, err := testutil.SampleEvent(ctx, &entity.Event{OrganizerID: organizer.ID})
		require.NoError(t, err)
		code, err := testutil.SampleClaimCode(ctx, &entity.ClaimCode{EventID: event.ID})
		require.NoError(t, err)

		claimed, err := d.Claim(attendeeCtx, &model.ClaimRequest{Code: code.Code})
		require.NoError(t, err)
		require.Equal(t, event.ID, claimed.Badge.EventID)
	}

	// A failed redemption releases the code too, retrying it still answers
	// with a clean error instead of the in-flight short circuit forever.
	event, err := testutil.SampleEvent(ctx, &entity.Event{OrganizerID: organizer.ID})
	require.NoError(t, err)
	code, err := testutil.SampleClaimCode(ctx, &entity.ClaimCode{EventID: event.ID, Used: true})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = d.Claim(attendeeCtx, &model.ClaimRequest{Code: code.Code})
		requireErrorCode(t, err, errorx.InvalidOrUsedCode)
	}
}

func Test_isDuplicateKeyError(t *testing.T) {
	require.True(t, isDuplicateKeyError(
		errors.New("Error 1062 (23000): Duplicate entry 'LEO-A1B2-X-Y' for key 'code'")))
	require.True(t, isDuplicateKeyError(
		errors.New("UNIQUE constraint failed: claim_codes.code")))
	require.False(t, isDuplicateKeyError(errors.New("dial tcp: connection refused")))
	require.False(t, isDuplicateKeyError(nil))
}
