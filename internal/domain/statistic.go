package domain

import (
	"context"

	"github.com/veleo-lab/backend/internal/common"
	"github.com/veleo-lab/backend/internal/model"
	"github.com/veleo-lab/backend/internal/repository"
	"github.com/veleo-lab/backend/pkg/errorx"
	"github.com/veleo-lab/backend/pkg/xcontext"
	"github.com/veleo-lab/backend/pkg/xredis"
)

type StatisticDomain interface {
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type statisticDomain struct {
	userRepo    repository.UserRepository
	redisClient xredis.Client
}

func NewStatisticDomain(
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *statisticDomain {
	return &statisticDomain{
		userRepo:    userRepo,
		redisClient: redisClient,
	}
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = cfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Require a limit between 1 and %d", cfg.MaxLimit)
	}

	if req.Offset < 0 {
		return nil, errorx.New(errorx.BadRequest, "Require a non-negative offset")
	}

	entries, err := d.redisClient.ZRevRangeWithScores(
		ctx, common.RedisKeyLeaderboard, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, z := range entries {
		userIDs = append(userIDs, z.Member.(string))
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users of leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	names := map[string]string{}
	for i := range users {
		names[users[i].ID] = users[i].DisplayName
	}

	leaderboard := []model.LeaderboardEntry{}
	for i, z := range entries {
		userID := z.Member.(string)
		leaderboard = append(leaderboard, model.LeaderboardEntry{
			UserID:      userID,
			DisplayName: names[userID],
			BadgeCount:  int64(z.Score),
			Rank:        uint64(req.Offset + i + 1),
		})
	}

	return &model.GetLeaderboardResponse{Leaderboard: leaderboard}, nil
}
