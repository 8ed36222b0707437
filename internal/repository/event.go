package repository

import (
	"context"

	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/pkg/xcontext"
)

type EventRepository interface {
	Create(ctx context.Context, data *entity.Event) error
	UpdateByID(ctx context.Context, id string, data *entity.Event) error
	SetActive(ctx context.Context, id string, active bool) error
	DeleteByID(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	GetByOrganizerID(ctx context.Context, organizerID string) ([]entity.Event, error)
}

type eventRepository struct{}

func NewEventRepository() *eventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(ctx context.Context, data *entity.Event) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *eventRepository) UpdateByID(ctx context.Context, id string, data *entity.Event) error {
	updateMap := map[string]any{}
	if data.Name != "" {
		updateMap["name"] = data.Name
	}

	if data.Description != "" {
		updateMap["description"] = data.Description
	}

	if data.Location != "" {
		updateMap["location"] = data.Location
	}

	if !data.StartDate.IsZero() {
		updateMap["start_date"] = data.StartDate
	}

	if !data.EndDate.IsZero() {
		updateMap["end_date"] = data.EndDate
	}

	if data.Category != "" {
		updateMap["category"] = data.Category
	}

	if data.ImageURL != "" {
		updateMap["image_url"] = data.ImageURL
	}

	if data.MaxAttendees != 0 {
		updateMap["max_attendees"] = data.MaxAttendees
	}

	if data.PrerequisiteEventID.Valid {
		updateMap["prerequisite_event_id"] = data.PrerequisiteEventID
	}

	if data.MinReputationLevel != 0 {
		updateMap["min_reputation_level"] = data.MinReputationLevel
	}

	return xcontext.DB(ctx).Model(&entity.Event{}).Where("id=?", id).Updates(updateMap).Error
}

func (r *eventRepository) SetActive(ctx context.Context, id string, active bool) error {
	return xcontext.DB(ctx).
		Model(&entity.Event{}).
		Where("id=?", id).
		Update("is_active", active).Error
}

func (r *eventRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Event{}).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	var record entity.Event
	err := xcontext.DB(ctx).
		Preload("Organizer").
		Where("events.id=?", id).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *eventRepository) GetByOrganizerID(
	ctx context.Context, organizerID string,
) ([]entity.Event, error) {
	records := []entity.Event{}
	err := xcontext.DB(ctx).
		Preload("Organizer").
		Where("organizer_id=?", organizerID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
