package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/veleo-lab/backend/internal/common"
	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/internal/model"
	"github.com/veleo-lab/backend/internal/repository"
	"github.com/veleo-lab/backend/pkg/enum"
	"github.com/veleo-lab/backend/pkg/errorx"
	"github.com/veleo-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type EventDomain interface {
	CreateEvent(context.Context, *model.CreateEventRequest) (*model.CreateEventResponse, error)
	UpdateEvent(context.Context, *model.UpdateEventRequest) (*model.UpdateEventResponse, error)
	DeleteEvent(context.Context, *model.DeleteEventRequest) (*model.DeleteEventResponse, error)
	SetEventActive(context.Context, *model.SetEventActiveRequest) (*model.SetEventActiveResponse, error)
	GetEvent(context.Context, *model.GetEventRequest) (*model.GetEventResponse, error)
	GetMyEvents(context.Context, *model.GetMyEventsRequest) (*model.GetMyEventsResponse, error)
}

type eventDomain struct {
	eventRepo    repository.EventRepository
	badgeRepo    repository.BadgeRepository
	roleVerifier *common.RoleVerifier
}

func NewEventDomain(
	eventRepo repository.EventRepository,
	badgeRepo repository.BadgeRepository,
	roleVerifier *common.RoleVerifier,
) *eventDomain {
	return &eventDomain{
		eventRepo:    eventRepo,
		badgeRepo:    badgeRepo,
		roleVerifier: roleVerifier,
	}
}

func (d *eventDomain) CreateEvent(
	ctx context.Context, req *model.CreateEventRequest,
) (*model.CreateEventResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleOrganizer); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when creating event: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Only organizers can create events")
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Require an event name")
	}

	category, err := enum.ToEnum[entity.EventCategory](req.Category)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid category %s", req.Category)
	}

	startDate, endDate, err := parseEventDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	prerequisite := sql.NullString{}
	if req.PrerequisiteEventID != "" {
		if _, err := d.eventRepo.GetByID(ctx, req.PrerequisiteEventID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found prerequisite event")
			}

			xcontext.Logger(ctx).Errorf("Cannot get prerequisite event: %v", err)
			return nil, errorx.Unknown
		}

		prerequisite = sql.NullString{Valid: true, String: req.PrerequisiteEventID}
	}

	if req.MinReputationLevel < 0 {
		return nil, errorx.New(errorx.BadRequest, "Require a non-negative reputation level")
	}

	event := &entity.Event{
		Base:                entity.Base{ID: uuid.NewString()},
		Name:                req.Name,
		Description:         req.Description,
		Location:            req.Location,
		StartDate:           startDate,
		EndDate:             endDate,
		Category:            category,
		OrganizerID:         xcontext.RequestUserID(ctx),
		ImageURL:            req.ImageURL,
		MaxAttendees:        req.MaxAttendees,
		IsActive:            true,
		PrerequisiteEventID: prerequisite,
		MinReputationLevel:  req.MinReputationLevel,
	}

	if err := d.eventRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateEventResponse{ID: event.ID}, nil
}

func (d *eventDomain) UpdateEvent(
	ctx context.Context, req *model.UpdateEventRequest,
) (*model.UpdateEventResponse, error) {
	event, err := d.getOwnedEvent(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	update := entity.Event{
		Name:               req.Name,
		Description:        req.Description,
		Location:           req.Location,
		ImageURL:           req.ImageURL,
		MaxAttendees:       req.MaxAttendees,
		MinReputationLevel: req.MinReputationLevel,
	}

	if req.Category != "" {
		category, err := enum.ToEnum[entity.EventCategory](req.Category)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid category %s", req.Category)
		}

		update.Category = category
	}

	if req.StartDate != "" || req.EndDate != "" {
		startDate, endDate, err := parseEventDates(req.StartDate, req.EndDate)
		if err != nil {
			return nil, err
		}

		update.StartDate = startDate
		update.EndDate = endDate
	}

	if req.PrerequisiteEventID != "" {
		if req.PrerequisiteEventID == event.ID {
			return nil, errorx.New(errorx.BadRequest, "An event cannot require itself")
		}

		if _, err := d.eventRepo.GetByID(ctx, req.PrerequisiteEventID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found prerequisite event")
			}

			xcontext.Logger(ctx).Errorf("Cannot get prerequisite event: %v", err)
			return nil, errorx.Unknown
		}

		update.PrerequisiteEventID = sql.NullString{Valid: true, String: req.PrerequisiteEventID}
	}

	if err := d.eventRepo.UpdateByID(ctx, event.ID, &update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateEventResponse{}, nil
}

func (d *eventDomain) DeleteEvent(
	ctx context.Context, req *model.DeleteEventRequest,
) (*model.DeleteEventResponse, error) {
	event, err := d.getOwnedEvent(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.eventRepo.DeleteByID(ctx, event.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteEventResponse{}, nil
}

func (d *eventDomain) SetEventActive(
	ctx context.Context, req *model.SetEventActiveRequest,
) (*model.SetEventActiveResponse, error) {
	event, err := d.getOwnedEvent(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.eventRepo.SetActive(ctx, event.ID, req.IsActive); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot change event active flag: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetEventActiveResponse{}, nil
}

func (d *eventDomain) GetEvent(
	ctx context.Context, req *model.GetEventRequest,
) (*model.GetEventResponse, error) {
	event, err := d.eventRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	badgeCount, err := d.badgeRepo.CountByEventID(ctx, event.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count badges of event: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetEventResponse(model.ConvertEvent(event, badgeCount))
	return &resp, nil
}

func (d *eventDomain) GetMyEvents(
	ctx context.Context, req *model.GetMyEventsRequest,
) (*model.GetMyEventsResponse, error) {
	events, err := d.eventRepo.GetByOrganizerID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get events of organizer: %v", err)
		return nil, errorx.Unknown
	}

	clientEvents := []model.Event{}
	for i := range events {
		badgeCount, err := d.badgeRepo.CountByEventID(ctx, events[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count badges of event: %v", err)
			return nil, errorx.Unknown
		}

		clientEvents = append(clientEvents, model.ConvertEvent(&events[i], badgeCount))
	}

	return &model.GetMyEventsResponse{Events: clientEvents}, nil
}

func (d *eventDomain) getOwnedEvent(ctx context.Context, id string) (*entity.Event, error) {
	event, err := d.eventRepo.GetByID(ctx, id)
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

	return event, nil
}

func parseEventDates(start, end string) (time.Time, time.Time, error) {
	var startDate, endDate time.Time
	var err error
	if start != "" {
		startDate, err = time.Parse(model.DefaultDateLayout, start)
		if err != nil {
			return time.Time{}, time.Time{}, errorx.New(errorx.BadRequest, "Invalid start date")
		}
	}

	if end != "" {
		endDate, err = time.Parse(model.DefaultDateLayout, end)
		if err != nil {
			return time.Time{}, time.Time{}, errorx.New(errorx.BadRequest, "Invalid end date")
		}
	}

	if !startDate.IsZero() && !endDate.IsZero() && endDate.Before(startDate) {
		return time.Time{}, time.Time{}, errorx.New(errorx.BadRequest, "End date is before start date")
	}

	return startDate, endDate, nil
}
