package model

type GetMyBadgesRequest struct{}

type GetMyBadgesResponse struct {
	Badges []Badge `json:"badges"`
}

type GetEventBadgesRequest struct {
	EventID string `json:"event_id"`
}

type GetEventBadgesResponse struct {
	Badges []Badge `json:"badges"`
}
