package domain

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/veleo-lab/backend/internal/common"
	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/internal/model"
	"github.com/veleo-lab/backend/internal/repository"
	"github.com/veleo-lab/backend/pkg/errorx"
	"github.com/veleo-lab/backend/pkg/storage"
	"github.com/veleo-lab/backend/pkg/testutil"
	"github.com/veleo-lab/backend/pkg/xcontext"
)

func newImageUploadRequest(t *testing.T, fileName string) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", fileName)
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, image.NewRGBA(image.Rect(0, 0, 16, 16))))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploadEventImage", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func Test_fileDomain_UploadEventImage(t *testing.T) {
	ctx := testutil.MockContext()
	organizer, err := testutil.SampleUser(ctx, &entity.User{Role: entity.RoleOrganizer})
	require.NoError(t, err)

	var uploaded []*storage.UploadObject
	mockStorage := &testutil.MockStorage{
		BulkUploadFunc: func(
			_ context.Context, objs []*storage.UploadObject,
		) ([]*storage.UploadResponse, error) {
			uploaded = objs
			resps := make([]*storage.UploadResponse, 0, len(objs))
			for _, obj := range objs {
				resps = append(resps, &storage.UploadResponse{
					Url:      "https://cdn.test/events/" + obj.FileName,
					FileName: obj.FileName,
				})
			}
			return resps, nil
		},
	}

	d := NewFileDomain(mockStorage, common.NewRoleVerifier(repository.NewUserRepository()))

	organizerCtx := xcontext.WithRequestUserID(ctx, organizer.ID)
	organizerCtx = xcontext.WithHTTPRequest(organizerCtx, newImageUploadRequest(t, "banner.png"))

	resp, err := d.UploadEventImage(organizerCtx, &model.UploadEventImageRequest{})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.test/events/1200x630-banner.png", resp.URL)

	// One object per configured size, resized to exactly that size.
	require.Len(t, uploaded, 2)
	require.Equal(t, "veleo-test", uploaded[0].Bucket)
	require.Equal(t, "events", uploaded[0].Prefix)
	require.Equal(t, "1200x630-banner.png", uploaded[0].FileName)
	require.Equal(t, "400x210-banner.png", uploaded[1].FileName)

	banner, err := png.Decode(bytes.NewReader(uploaded[0].Data))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 1200, 630), banner.Bounds())
}

func Test_fileDomain_UploadEventImage_permission(t *testing.T) {
	ctx := testutil.MockContext()
	attendee, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	d := NewFileDomain(
		&testutil.MockStorage{},
		common.NewRoleVerifier(repository.NewUserRepository()),
	)

	attendeeCtx := xcontext.WithRequestUserID(ctx, attendee.ID)
	attendeeCtx = xcontext.WithHTTPRequest(attendeeCtx, newImageUploadRequest(t, "banner.png"))

	_, err = d.UploadEventImage(attendeeCtx, &model.UploadEventImageRequest{})
	requireErrorCode(t, err, errorx.PermissionDenied)
}
