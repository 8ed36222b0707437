package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/internal/repository"
	"github.com/veleo-lab/backend/pkg/claimcode"
)

// SampleUser creates a new user in database with many fields randomized. The
// sample can be overwritten by non-zero fields of init.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	userRepo := repository.NewUserRepository()

	sample := &entity.User{
		Base:        entity.Base{ID: uuid.NewString()},
		Email:       uuid.NewString() + "@example.com",
		Role:        entity.RoleAttendee,
		DisplayName: uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := userRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleEvent(ctx context.Context, init *entity.Event) (entity.Event, error) {
	eventRepo := repository.NewEventRepository()

	sample := &entity.Event{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        uuid.NewString(),
		Location:    "Hanoi",
		StartDate:   time.Now(),
		EndDate:     time.Now().Add(24 * time.Hour),
		Category:    entity.CategoryMeetup,
		OrganizerID: uuid.NewString(),
		IsActive:    true,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := eventRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleClaimCode(ctx context.Context, init *entity.ClaimCode) (entity.ClaimCode, error) {
	claimCodeRepo := repository.NewClaimCodeRepository()

	eventID := uuid.NewString()
	if init != nil && init.EventID != "" {
		eventID = init.EventID
	}

	sample := &entity.ClaimCode{
		Base:    entity.Base{ID: uuid.NewString()},
		EventID: eventID,
		Code:    claimcode.Generate(eventID),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := claimCodeRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleBadge(ctx context.Context, init *entity.Badge) (entity.Badge, error) {
	badgeRepo := repository.NewBadgeRepository()

	eventID := uuid.NewString()
	if init != nil && init.EventID != "" {
		eventID = init.EventID
	}

	sample := &entity.Badge{
		Base:      entity.Base{ID: uuid.NewString()},
		TokenID:   time.Now().UnixNano(),
		UserID:    uuid.NewString(),
		EventID:   eventID,
		EventName: uuid.NewString(),
		ClaimCode: claimcode.Generate(eventID),
		Claimed:   true,
		ClaimedAt: time.Now(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := badgeRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if overwriteField.Interface() != reflect.Zero(overwriteField.Type()).Interface() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
