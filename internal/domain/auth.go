package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/internal/model"
	"github.com/veleo-lab/backend/internal/repository"
	"github.com/veleo-lab/backend/pkg/authenticator"
	"github.com/veleo-lab/backend/pkg/enum"
	"github.com/veleo-lab/backend/pkg/errorx"
	"github.com/veleo-lab/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	OAuth2Verify(context.Context, *model.OAuth2VerifyRequest) (*model.OAuth2VerifyResponse, error)
	ConnectWallet(context.Context, *model.ConnectWalletRequest) (*model.ConnectWalletResponse, error)
}

type authDomain struct {
	userRepo       repository.UserRepository
	oauth2Services []authenticator.IOAuth2Service
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	oauth2Services []authenticator.IOAuth2Service,
) *authDomain {
	return &authDomain{
		userRepo:       userRepo,
		oauth2Services: oauth2Services,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errorx.New(errorx.BadRequest, "Require an email and a password")
	}

	role, err := enum.ToEnum[entity.Role](req.Role)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
	}

	_, err = d.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email has already been registered")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Email:          req.Email,
		HashedPassword: string(hashed),
		Role:           role,
		DisplayName:    req.DisplayName,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	token, err := d.generateAccessToken(ctx, user)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{
		User:        model.ConvertUser(user),
		AccessToken: token,
	}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password))
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	token, err := d.generateAccessToken(ctx, user)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		User:        model.ConvertUser(user),
		AccessToken: token,
	}, nil
}

func (d *authDomain) OAuth2Verify(
	ctx context.Context, req *model.OAuth2VerifyRequest,
) (*model.OAuth2VerifyResponse, error) {
	service, ok := d.getOAuth2Service(req.Type)
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Unsupported oauth2 service %s", req.Type)
	}

	serviceUser, err := service.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify id token: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid id token")
	}

	user, err := d.userRepo.GetByEmail(ctx, serviceUser.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
			return nil, errorx.Unknown
		}

		user = &entity.User{
			Base:        entity.Base{ID: uuid.NewString()},
			Email:       serviceUser.Email,
			Role:        entity.RoleAttendee,
			DisplayName: serviceUser.Username,
		}

		if err := d.userRepo.Create(ctx, user); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
			return nil, errorx.Unknown
		}
	}

	token, err := d.generateAccessToken(ctx, user)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.OAuth2VerifyResponse{
		User:        model.ConvertUser(user),
		AccessToken: token,
	}, nil
}

func (d *authDomain) ConnectWallet(
	ctx context.Context, req *model.ConnectWalletRequest,
) (*model.ConnectWalletResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if req.WalletAddress == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a wallet address")
	}

	address := sql.NullString{Valid: true, String: req.WalletAddress}
	if err := d.userRepo.UpdateWalletAddress(ctx, userID, address); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update wallet address: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ConnectWalletResponse{}, nil
}

func (d *authDomain) generateAccessToken(ctx context.Context, user *entity.User) (string, error) {
	return xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{
			ID:      user.ID,
			Role:    string(user.Role),
			Address: user.WalletAddress.String,
		})
}

func (d *authDomain) getOAuth2Service(service string) (authenticator.IOAuth2Service, bool) {
	for i := range d.oauth2Services {
		if d.oauth2Services[i].Service() == service {
			return d.oauth2Services[i], true
		}
	}

	return nil, false
}
