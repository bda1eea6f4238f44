package dto

import md "github.com/JMURv/taskboard/internal/models"

type PreferencesRequest struct {
	Theme         string `json:"theme"         validate:"omitempty,oneof=light dark system"`
	Notifications string `json:"notifications" validate:"omitempty,oneof=all important none"`
	Language      string `json:"language"      validate:"omitempty,oneof=en es fr de zh"`
}

type UpdateSettingsRequest struct {
	Name        *string             `json:"name"        validate:"omitempty,min=2,max=50"`
	Avatar      *string             `json:"avatar"      validate:"omitempty,url"`
	Bio         *string             `json:"bio"         validate:"omitempty,max=500"`
	Location    *string             `json:"location"`
	Website     *string             `json:"website"     validate:"omitempty,url"`
	SocialLinks *md.SocialLinks     `json:"socialLinks"`
	Preferences *PreferencesRequest `json:"preferences"`
}

type UploadAvatarResponse struct {
	Avatar string `json:"avatar"`
}
