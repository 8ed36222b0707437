package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/internal/repository"
	"github.com/veleo-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type RoleVerifier struct {
	userRepo repository.UserRepository
}

func NewRoleVerifier(userRepo repository.UserRepository) *RoleVerifier {
	return &RoleVerifier{userRepo: userRepo}
}

func (verifier *RoleVerifier) Verify(ctx context.Context, requiredRoles ...entity.Role) error {
	userID := xcontext.RequestUserID(ctx)
	u, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user is not valid")
	}

	if !slices.Contains(requiredRoles, u.Role) {
		return errors.New("user role does not have permission")
	}

	return nil
}
