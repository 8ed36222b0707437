package domain

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/internal/model"
	"github.com/veleo-lab/backend/internal/repository"
	"github.com/veleo-lab/backend/pkg/errorx"
	"github.com/veleo-lab/backend/pkg/testutil"
)

func Test_statisticDomain_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	first, err := testutil.SampleUser(ctx, &entity.User{DisplayName: "First"})
	require.NoError(t, err)
	second, err := testutil.SampleUser(ctx, &entity.User{DisplayName: "Second"})
	require.NoError(t, err)

	redisClient := &testutil.MockRedisClient{
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
			return []redis.Z{
				{Member: first.ID, Score: 5},
				{Member: second.ID, Score: 2},
			}, nil
		},
	}

	d := NewStatisticDomain(repository.NewUserRepository(), redisClient)

	resp, err := d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Leaderboard, 2)
	require.Equal(t, "First", resp.Leaderboard[0].DisplayName)
	require.Equal(t, int64(5), resp.Leaderboard[0].BadgeCount)
	require.Equal(t, uint64(1), resp.Leaderboard[0].Rank)
	require.Equal(t, uint64(2), resp.Leaderboard[1].Rank)

	_, err = d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Limit: 1000})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Offset: -1, Limit: 10})
	requireErrorCode(t, err, errorx.BadRequest)
}
