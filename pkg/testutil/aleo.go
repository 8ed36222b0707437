package testutil

import (
	"context"

	"github.com/veleo-lab/backend/pkg/errorx"
)

type MockAleoCaller struct {
	SubmitClaimFunc func(ctx context.Context, address, eventID, code string, claimedAtMs int64) (string, error)
}

func (m *MockAleoCaller) SubmitClaim(
	ctx context.Context, address, eventID, code string, claimedAtMs int64,
) (string, error) {
	if m.SubmitClaimFunc != nil {
		return m.SubmitClaimFunc(ctx, address, eventID, code, claimedAtMs)
	}

	return "", errorx.New(errorx.NotImplemented, "Not implemented")
}
