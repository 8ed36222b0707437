package domain

import (
	"context"

	"github.com/veleo-lab/backend/internal/common"
	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/internal/model"
	"github.com/veleo-lab/backend/pkg/errorx"
	"github.com/veleo-lab/backend/pkg/storage"
	"github.com/veleo-lab/backend/pkg/xcontext"
)

type FileDomain interface {
	UploadEventImage(context.Context, *model.UploadEventImageRequest) (*model.UploadEventImageResponse, error)
}

type fileDomain struct {
	fileStorage  storage.Storage
	roleVerifier *common.RoleVerifier
}

func NewFileDomain(
	fileStorage storage.Storage,
	roleVerifier *common.RoleVerifier,
) *fileDomain {
	return &fileDomain{
		fileStorage:  fileStorage,
		roleVerifier: roleVerifier,
	}
}

func (d *fileDomain) UploadEventImage(
	ctx context.Context, req *model.UploadEventImageRequest,
) (*model.UploadEventImageResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleOrganizer); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when uploading image: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Only organizers can upload event images")
	}

	responses, err := common.ProcessImage(ctx, d.fileStorage, "image")
	if err != nil {
		return nil, err
	}

	// The first size is the banner, the url the event record stores.
	return &model.UploadEventImageResponse{URL: responses[0].Url}, nil
}
