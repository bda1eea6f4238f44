package models

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Preferences struct {
	Theme         string `json:"theme"`
	Notifications string `json:"notifications"`
	Language      string `json:"language"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         "system",
		Notifications: "all",
		Language:      "en",
	}
}

type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
	Github   string `json:"github,omitempty"`
}

type User struct {
	ID          uuid.UUID   `db:"id"           json:"id"`
	Name        string      `db:"name"         json:"name"`
	Password    string      `db:"password"     json:"-"`
	Email       string      `db:"email"        json:"email"`
	Avatar      string      `db:"avatar"       json:"avatar"`
	Role        string      `db:"role"         json:"role"`
	Bio         string      `db:"bio"          json:"bio,omitempty"`
	Location    string      `db:"location"     json:"location,omitempty"`
	Website     string      `db:"website"      json:"website,omitempty"`
	SocialLinks SocialLinks `db:"social_links" json:"socialLinks"`
	Preferences Preferences `db:"preferences"  json:"preferences"`
	IsVerified  bool        `db:"is_verified"  json:"isVerified"`
	LastLogin   *time.Time  `db:"last_login"   json:"lastLogin,omitempty"`
	CreatedAt   time.Time   `db:"created_at"   json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at"   json:"updatedAt"`
}

type LoginEntry struct {
	ID        uint64    `db:"id"        json:"id"`
	UserID    uuid.UUID `db:"user_id"   json:"userId"`
	Timestamp time.Time `db:"ts"        json:"timestamp"`
	IP        string    `db:"ip"        json:"ip"`
	Device    string    `db:"device"    json:"device"`
}

func (p Preferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Preferences) Scan(src any) error {
	return scanJSON(src, p)
}

func (s SocialLinks) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SocialLinks) Scan(src any) error {
	return scanJSON(src, s)
}

func scanJSON(src, dest any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported jsonb source type")
	}
}
