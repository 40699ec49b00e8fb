package models

import "time"

// MaxSignatures is the hard per-document signature cap.
const MaxSignatures = 5

// Signature is an append-only record binding a signer to the document
// bytes as they were when the signature was taken.
type Signature struct {
	ID         string
	DocumentID string
	UserID     string
	Order      int
	Digest     string
	SignedAt   time.Time
}
