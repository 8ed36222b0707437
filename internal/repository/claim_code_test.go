package repository_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/internal/repository"
	"github.com/veleo-lab/backend/pkg/testutil"
)

func Test_claimCodeRepository_ClaimIfUnused(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewClaimCodeRepository()

	code, err := testutil.SampleClaimCode(ctx, nil)
	require.NoError(t, err)

	claimed, err := repo.ClaimIfUnused(ctx, code.Code, "user1")
	require.NoError(t, err)
	require.True(t, claimed)

	record, err := repo.GetByCode(ctx, code.Code)
	require.NoError(t, err)
	require.True(t, record.Used)
	require.Equal(t, "user1", record.UsedBy.String)
	require.True(t, record.UsedAt.Valid)

	// The used flag makes the second attempt a no-op, the first winner keeps
	// the code.
	claimed, err = repo.ClaimIfUnused(ctx, code.Code, "user2")
	require.NoError(t, err)
	require.False(t, claimed)

	record, err = repo.GetByCode(ctx, code.Code)
	require.NoError(t, err)
	require.Equal(t, "user1", record.UsedBy.String)
}

func Test_claimCodeRepository_ClaimIfUnused_unknownCode(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewClaimCodeRepository()

	claimed, err := repo.ClaimIfUnused(ctx, "LEO-ZZZZ-ZZZZZZ-ZZZZZZ", "user1")
	require.NoError(t, err)
	require.False(t, claimed)
}

func Test_claimCodeRepository_duplicateCodeRejected(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewClaimCodeRepository()

	code, err := testutil.SampleClaimCode(ctx, nil)
	require.NoError(t, err)

	err = repo.Create(ctx, &entity.ClaimCode{
		Base:    entity.Base{ID: "another-id"},
		EventID: code.EventID,
		Code:    code.Code,
	})
	require.Error(t, err)
}
