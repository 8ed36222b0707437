package model

type GetLeaderboardRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetLeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}
