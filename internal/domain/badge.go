package domain

import (
	"context"
	"errors"

	"github.com/veleo-lab/backend/internal/model"
	"github.com/veleo-lab/backend/internal/repository"
	"github.com/veleo-lab/backend/pkg/errorx"
	"github.com/veleo-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BadgeDomain interface {
	GetMyBadges(context.Context, *model.GetMyBadgesRequest) (*model.GetMyBadgesResponse, error)
	GetEventBadges(context.Context, *model.GetEventBadgesRequest) (*model.GetEventBadgesResponse, error)
}

type badgeDomain struct {
	badgeRepo repository.BadgeRepository
	eventRepo repository.EventRepository
}

func NewBadgeDomain(
	badgeRepo repository.BadgeRepository,
	eventRepo repository.EventRepository,
) *badgeDomain {
	return &badgeDomain{
		badgeRepo: badgeRepo,
		eventRepo: eventRepo,
	}
}

func (d *badgeDomain) GetMyBadges(
	ctx context.Context, req *model.GetMyBadgesRequest,
) (*model.GetMyBadgesResponse, error) {
	badges, err := d.badgeRepo.GetByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badges of user: %v", err)
		return nil, errorx.Unknown
	}

	clientBadges := []model.Badge{}
	for i := range badges {
		clientBadges = append(clientBadges, model.ConvertBadge(&badges[i]))
	}

	return &model.GetMyBadgesResponse{Badges: clientBadges}, nil
}

func (d *badgeDomain) GetEventBadges(
	ctx context.Context, req *model.GetEventBadgesRequest,
) (*model.GetEventBadgesResponse, error) {
	event, err := d.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	if event.OrganizerID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the organizer can manage this event")
	}

	badges, err := d.badgeRepo.GetByEventID(ctx, event.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badges of event: %v", err)
		return nil, errorx.Unknown
	}

	clientBadges := []model.Badge{}
	for i := range badges {
		clientBadges = append(clientBadges, model.ConvertBadge(&badges[i]))
	}

	return &model.GetEventBadgesResponse{Badges: clientBadges}, nil
}
