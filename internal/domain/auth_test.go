package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/internal/model"
	"github.com/veleo-lab/backend/internal/repository"
	"github.com/veleo-lab/backend/pkg/errorx"
	"github.com/veleo-lab/backend/pkg/testutil"
	"github.com/veleo-lab/backend/pkg/xcontext"
)

func Test_authDomain_RegisterAndLogin(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewAuthDomain(repository.NewUserRepository(), nil)

	registered, err := d.Register(ctx, &model.RegisterRequest{
		Email:       "gopher@example.com",
		Password:    "super-secret",
		DisplayName: "Gopher",
		Role:        "attendee",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.AccessToken)
	require.Equal(t, "gopher@example.com", registered.User.Email)
	require.Equal(t, "attendee", registered.User.Role)

	// The token must carry the new user id.
	var info model.AccessToken
	err = xcontext.TokenEngine(ctx).Verify(registered.AccessToken, &info)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, info.ID)

	_, err = d.Register(ctx, &model.RegisterRequest{
		Email:    "gopher@example.com",
		Password: "another-secret",
		Role:     "attendee",
	})
	requireErrorCode(t, err, errorx.AlreadyExists)

	_, err = d.Register(ctx, &model.RegisterRequest{
		Email:    "organizer@example.com",
		Password: "x",
		Role:     "superuser",
	})
	requireErrorCode(t, err, errorx.BadRequest)

	logged, err := d.Login(ctx, &model.LoginRequest{
		Email:    "gopher@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, logged.User.ID)

	_, err = d.Login(ctx, &model.LoginRequest{
		Email:    "gopher@example.com",
		Password: "wrong-password",
	})
	requireErrorCode(t, err, errorx.Unauthenticated)

	_, err = d.Login(ctx, &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	requireErrorCode(t, err, errorx.Unauthenticated)
}

func Test_authDomain_ConnectWallet(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()
	d := NewAuthDomain(userRepo, nil)

	user, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleAttendee})
	require.NoError(t, err)

	userCtx := xcontext.WithRequestUserID(ctx, user.ID)
	_, err = d.ConnectWallet(userCtx, &model.ConnectWalletRequest{WalletAddress: "aleo1abc"})
	require.NoError(t, err)

	got, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, got.WalletAddress.Valid)
	require.Equal(t, "aleo1abc", got.WalletAddress.String)

	_, err = d.ConnectWallet(userCtx, &model.ConnectWalletRequest{})
	requireErrorCode(t, err, errorx.BadRequest)
}
