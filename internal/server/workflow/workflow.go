// Package workflow holds the document state machine rules. Everything here
// is pure; persistence and notification happen in the services package.
package workflow

import (
	"time"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/server/models"
	"github.com/dmitrijs2005/docflow/internal/server/permissions"
)

// Attempt reports whether role may move a document from one status to
// another by a direct status change.
func Attempt(role models.Role, from, to models.Status) bool {
	switch role {
	case models.RoleEmployee:
		return false
	case models.RoleSupervisor:
		return from == models.StatusInReview && (to == models.StatusSigned || to == models.StatusRejected)
	case models.RoleAdmin, models.RoleInstitutionalManager:
		return true
	case models.RoleSigner:
		// signers only act through the signature ledger
		return false
	default:
		return false
	}
}

// AttemptSignature reports whether adding a signature by role may carry the
// document from its current status to SIGNED.
func AttemptSignature(role models.Role, from models.Status) bool {
	if !permissions.Can(role, permissions.ActionSign) {
		return false
	}
	if role == models.RoleSigner {
		return from == models.StatusInReview
	}
	return Attempt(role, from, models.StatusSigned)
}

// AllowedTransitions lists, in status order, every target Attempt permits
// for role on a document currently in from.
func AllowedTransitions(role models.Role, from models.Status) []models.Status {
	var out []models.Status
	for _, to := range models.Statuses() {
		if Attempt(role, from, to) {
			out = append(out, to)
		}
	}
	return out
}

// Transition is the outcome of applying a status change to a document.
type Transition struct {
	DocumentID string
	OwnerID    string
	Name       string
	From       models.Status
	To         models.Status
	At         time.Time
}

// Check returns a *common.DocumentStateError when allowed is false.
func Check(allowed bool, role models.Role, from, to models.Status) error {
	if allowed {
		return nil
	}
	return &common.DocumentStateError{Role: string(role), From: string(from), To: string(to)}
}

// Apply moves doc to the target status and stamps the matching timestamp.
// It does not check permissions.
func Apply(doc *models.Document, to models.Status, now time.Time) Transition {
	tr := Transition{
		DocumentID: doc.ID,
		OwnerID:    doc.UserID,
		Name:       doc.Name,
		From:       doc.Status,
		To:         to,
		At:         now,
	}
	doc.Status = to
	switch to {
	case models.StatusRejected:
		doc.RejectedAt = &now
	case models.StatusSigned:
		doc.SignedAt = &now
	}
	return tr
}
