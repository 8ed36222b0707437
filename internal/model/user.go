package model

type GetUserRequest struct{}

type GetUserResponse User
