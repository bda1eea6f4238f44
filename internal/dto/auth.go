package dto

import (
	md "github.com/JMURv/taskboard/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type EmailAndPasswordRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LogoutRequest struct {
	AllDevices bool `json:"allDevices"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// SessionResponse is the payload of register/login: the public profile
// of the Principal, tokens travel only in cookies.
type SessionResponse struct {
	User *md.User `json:"user"`
}

type LoginMeta struct {
	IP string
	UA string
}
