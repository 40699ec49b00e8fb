package models

import "time"

// Status is the closed set of document states.
type Status string

const (
	StatusInReview Status = "IN_REVIEW"
	StatusSigned   Status = "SIGNED"
	StatusRejected Status = "REJECTED"
)

// Statuses lists every status, in declaration order.
func Statuses() []Status {
	return []Status{StatusInReview, StatusSigned, StatusRejected}
}

func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses() {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Document is the metadata row of one uploaded artifact. The bytes live in
// the blob store under StorageKey.
type Document struct {
	ID         string
	UserID     string
	Name       string
	StorageKey string
	Size       int64
	Status     Status
	UploadedAt time.Time
	RejectedAt *time.Time
	SignedAt   *time.Time
}
