package model

type CreateEventRequest struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	Location            string `json:"location"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	Category            string `json:"category"`
	ImageURL            string `json:"image_url"`
	MaxAttendees        int    `json:"max_attendees"`
	PrerequisiteEventID string `json:"prerequisite_event_id"`
	MinReputationLevel  int    `json:"min_reputation_level"`
}

type CreateEventResponse struct {
	ID string `json:"id"`
}

type UpdateEventRequest struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	Location            string `json:"location"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	Category            string `json:"category"`
	ImageURL            string `json:"image_url"`
	MaxAttendees        int    `json:"max_attendees"`
	PrerequisiteEventID string `json:"prerequisite_event_id"`
	MinReputationLevel  int    `json:"min_reputation_level"`
}

type UpdateEventResponse struct{}

type DeleteEventRequest struct {
	ID string `json:"id"`
}

type DeleteEventResponse struct{}

type SetEventActiveRequest struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}

type SetEventActiveResponse struct{}

type GetEventRequest struct {
	ID string `json:"id"`
}

type GetEventResponse Event

type GetMyEventsRequest struct{}

type GetMyEventsResponse struct {
	Events []Event `json:"events"`
}
