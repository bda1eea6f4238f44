package models

import (
	"database/sql/driver"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Tags []string

type Todo struct {
	ID          uuid.UUID  `db:"id"           json:"id"`
	UserID      uuid.UUID  `db:"user_id"      json:"userId"`
	Title       string     `db:"title"        json:"title"`
	Description string     `db:"description"  json:"description,omitempty"`
	Status      string     `db:"status"       json:"status"`
	Priority    string     `db:"priority"     json:"priority"`
	DueDate     *time.Time `db:"due_date"     json:"dueDate,omitempty"`
	Completed   bool       `db:"completed"    json:"completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completedAt,omitempty"`
	Tags        Tags       `db:"tags"         json:"tags"`
	CreatedAt   time.Time  `db:"created_at"   json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at"   json:"updatedAt"`
}

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	return json.Marshal(t)
}

func (t *Tags) Scan(src any) error {
	return scanJSON(src, t)
}
