package models

import "time"

type Notification struct {
	ID        string
	UserID    string
	Kind      string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
