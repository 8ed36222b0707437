package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"github.com/veleo-lab/backend/internal/client"
	"github.com/veleo-lab/backend/internal/common"
	"github.com/veleo-lab/backend/internal/domain/eligibility"
	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/internal/model"
	"github.com/veleo-lab/backend/internal/repository"
	"github.com/veleo-lab/backend/pkg/claimcode"
	"github.com/veleo-lab/backend/pkg/errorx"
	"github.com/veleo-lab/backend/pkg/xcontext"
	"github.com/veleo-lab/backend/pkg/xredis"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const maxCodesPerRequest = 500

type ClaimCodeDomain interface {
	GenerateClaimCodes(context.Context, *model.GenerateClaimCodesRequest) (*model.GenerateClaimCodesResponse, error)
	GetClaimCodes(context.Context, *model.GetClaimCodesRequest) (*model.GetClaimCodesResponse, error)
	GetClaimCodeQR(context.Context, *model.GetClaimCodeQRRequest) (*model.GetClaimCodeQRResponse, error)
	Claim(context.Context, *model.ClaimRequest) (*model.ClaimResponse, error)
	ValidateClaimCode(context.Context, *model.ValidateClaimCodeRequest) (*model.ValidateClaimCodeResponse, error)
}

type claimCodeDomain struct {
	claimCodeRepo repository.ClaimCodeRepository
	eventRepo     repository.EventRepository
	badgeRepo     repository.BadgeRepository
	userRepo      repository.UserRepository
	roleVerifier  *common.RoleVerifier
	aleoCaller    client.AleoCaller
	redisClient   xredis.Client

	// One redemption at a time per code in this process. The conditional
	// update in the repository is the real arbiter across processes, this
	// guard just avoids burning a transaction on an obvious loser.
	inflightCodes *xsync.MapOf[string, struct{}]
}

func NewClaimCodeDomain(
	claimCodeRepo repository.ClaimCodeRepository,
	eventRepo repository.EventRepository,
	badgeRepo repository.BadgeRepository,
	userRepo repository.UserRepository,
	roleVerifier *common.RoleVerifier,
	aleoCaller client.AleoCaller,
	redisClient xredis.Client,
) *claimCodeDomain {
	return &claimCodeDomain{
		claimCodeRepo: claimCodeRepo,
		eventRepo:     eventRepo,
		badgeRepo:     badgeRepo,
		userRepo:      userRepo,
		roleVerifier:  roleVerifier,
		aleoCaller:    aleoCaller,
		redisClient:   redisClient,
		inflightCodes: xsync.NewMapOf[struct{}](),
	}
}

func (d *claimCodeDomain) GenerateClaimCodes(
	ctx context.Context, req *model.GenerateClaimCodesRequest,
) (*model.GenerateClaimCodesResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleOrganizer); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when generating codes: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Only organizers can generate claim codes")
	}

	if req.Number <= 0 || req.Number > maxCodesPerRequest {
		return nil, errorx.New(errorx.BadRequest,
			"Require a number of codes between 1 and %d", maxCodesPerRequest)
	}

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

	codes := make([]string, req.Number)
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := 0; i < req.Number; i++ {
		i := i
		g.Go(func() error {
			// The unique index on code catches the rare collision, retry
			// with a fresh random segment.
			for attempt := 0; ; attempt++ {
				code := claimcode.Generate(event.ID)
				err := d.claimCodeRepo.Create(groupCtx, &entity.ClaimCode{
					Base:    entity.Base{ID: uuid.NewString()},
					EventID: event.ID,
					Code:    code,
				})
				if err == nil {
					codes[i] = code
					return nil
				}

				if !isDuplicateKeyError(err) || attempt >= 2 {
					return err
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create claim codes: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GenerateClaimCodesResponse{Codes: codes}, nil
}

func (d *claimCodeDomain) GetClaimCodes(
	ctx context.Context, req *model.GetClaimCodesRequest,
) (*model.GetClaimCodesResponse, error) {
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

	codes, err := d.claimCodeRepo.GetByEventID(ctx, req.EventID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get claim codes: %v", err)
		return nil, errorx.Unknown
	}

	clientCodes := []model.ClaimCode{}
	for i := range codes {
		clientCodes = append(clientCodes, model.ConvertClaimCode(&codes[i]))
	}

	return &model.GetClaimCodesResponse{ClaimCodes: clientCodes}, nil
}

func (d *claimCodeDomain) GetClaimCodeQR(
	ctx context.Context, req *model.GetClaimCodeQRRequest,
) (*model.GetClaimCodeQRResponse, error) {
	code, err := d.claimCodeRepo.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found claim code")
		}

		xcontext.Logger(ctx).Errorf("Cannot get claim code: %v", err)
		return nil, errorx.Unknown
	}

	if code.Event.OrganizerID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the organizer can manage this event")
	}

	payload, err := claimcode.EncodeQRPayload(
		code.Code, code.EventID, code.Event.Name, "VeLeo", code.Event.EndDate)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode qr payload: %v", err)
		return nil, errorx.Unknown
	}

	cfg := xcontext.Configs(ctx).QR
	size := req.Size
	if size <= 0 {
		size = cfg.DefaultSize
	}

	return &model.GetClaimCodeQRResponse{
		Payload:  payload,
		ImageURL: claimcode.ImageURL(cfg.Endpoint, payload, size),
	}, nil
}

func (d *claimCodeDomain) Claim(
	ctx context.Context, req *model.ClaimRequest,
) (*model.ClaimResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if !claimcode.IsValid(req.Code) {
		return nil, errorx.New(errorx.InvalidOrUsedCode, "Invalid or already used claim code")
	}

	if _, loaded := d.inflightCodes.LoadOrStore(req.Code, struct{}{}); loaded {
		return nil, errorx.New(errorx.InvalidOrUsedCode, "Invalid or already used claim code")
	}
	defer d.inflightCodes.Delete(req.Code)

	code, err := d.claimCodeRepo.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InvalidOrUsedCode, "Invalid or already used claim code")
		}

		xcontext.Logger(ctx).Errorf("Cannot get claim code: %v", err)
		return nil, errorx.Unknown
	}

	if code.Used {
		return nil, errorx.New(errorx.InvalidOrUsedCode, "Invalid or already used claim code")
	}

	event, err := d.eventRepo.GetByID(ctx, code.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event of claim code: %v", err)
		return nil, errorx.Unknown
	}

	if !event.IsActive {
		return nil, errorx.New(errorx.Unavailable, "This event no longer accepts claims")
	}

	existingBadges, err := d.badgeRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badges of user: %v", err)
		return nil, errorx.Unknown
	}

	for _, b := range existingBadges {
		if b.EventID == event.ID {
			return nil, errorx.New(errorx.AlreadyExists, "You already hold a badge for this event")
		}
	}

	if err := eligibility.Evaluate(event, existingBadges); err != nil {
		return nil, err
	}

	if event.MaxAttendees > 0 {
		attendees, err := d.badgeRepo.CountByEventID(ctx, event.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count badges of event: %v", err)
			return nil, errorx.Unknown
		}

		if attendees >= int64(event.MaxAttendees) {
			return nil, errorx.New(errorx.Unavailable, "This event is full")
		}
	}

	claimedAt := time.Now()
	badge := &entity.Badge{
		Base:      entity.Base{ID: uuid.NewString()},
		TokenID:   xcontext.SnowFlake(ctx).Generate().Int64(),
		UserID:    userID,
		EventID:   event.ID,
		EventName: event.Name,
		ClaimCode: code.Code,
		Claimed:   true,
		ClaimedAt: claimedAt,
	}

	// Chain submission is best effort. A slow or unavailable network must
	// not block the badge, so a failure here only costs the tx id.
	d.submitChainClaim(ctx, badge, event, claimedAt)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	claimed, err := d.claimCodeRepo.ClaimIfUnused(ctx, code.Code, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot retire claim code: %v", err)
		return nil, errorx.Unknown
	}

	if !claimed {
		return nil, errorx.New(errorx.InvalidOrUsedCode, "Invalid or already used claim code")
	}

	if err := d.badgeRepo.Create(ctx, badge); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create badge: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if err := d.redisClient.ZIncrBy(ctx, common.RedisKeyLeaderboard, 1, userID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update leaderboard: %v", err)
	}

	return &model.ClaimResponse{Badge: model.ConvertBadge(badge)}, nil
}

func (d *claimCodeDomain) ValidateClaimCode(
	ctx context.Context, req *model.ValidateClaimCodeRequest,
) (*model.ValidateClaimCodeResponse, error) {
	if !claimcode.IsValid(req.Code) {
		return &model.ValidateClaimCodeResponse{Valid: false}, nil
	}

	code, err := d.claimCodeRepo.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.ValidateClaimCodeResponse{Valid: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get claim code: %v", err)
		return nil, errorx.Unknown
	}

	if code.Used {
		return &model.ValidateClaimCodeResponse{Valid: false}, nil
	}

	return &model.ValidateClaimCodeResponse{
		Valid:     true,
		EventID:   code.EventID,
		EventName: code.Event.Name,
	}, nil
}

func (d *claimCodeDomain) submitChainClaim(
	ctx context.Context, badge *entity.Badge, event *entity.Event, claimedAt time.Time,
) {
	user, err := d.userRepo.GetByID(ctx, badge.UserID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get user for chain claim: %v", err)
		return
	}

	if !user.WalletAddress.Valid {
		return
	}

	txID, err := d.aleoCaller.SubmitClaim(
		ctx, user.WalletAddress.String, event.ID, badge.ClaimCode, claimedAt.UnixMilli())
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot submit chain claim: %v", err)
		return
	}

	badge.AleoTxID.Valid = true
	badge.AleoTxID.String = txID
}

// isDuplicateKeyError reports whether err is a unique-index violation. Gorm
// surfaces the raw driver message, so match on the mysql and sqlite texts.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	return strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}
