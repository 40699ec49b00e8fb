// Package notify turns domain events into user-facing notifications.
package notify

import (
	"fmt"

	"github.com/dmitrijs2005/docflow/internal/server/models"
)

type Kind string

const (
	KindStatusChanged Kind = "STATUS_CHANGED"
)

// Event is a tagged variant: Payload's concrete type is fixed by Kind.
type Event struct {
	Kind    Kind
	Payload any
}

// StatusChanged is the payload of KindStatusChanged.
type StatusChanged struct {
	DocumentName string
	NewStatus    models.Status
}

func NewStatusChanged(documentName string, status models.Status) Event {
	return Event{
		Kind:    KindStatusChanged,
		Payload: StatusChanged{DocumentName: documentName, NewStatus: status},
	}
}

var statusLabels = map[models.Status]string{
	models.StatusInReview: "In review",
	models.StatusSigned:   "Signed",
	models.StatusRejected: "Rejected",
}

// Render returns the title and message shown to the recipient of e.
func Render(e Event) (title, message string, err error) {
	switch e.Kind {
	case KindStatusChanged:
		p, ok := e.Payload.(StatusChanged)
		if !ok {
			return "", "", fmt.Errorf("notify: %s event carries %T", e.Kind, e.Payload)
		}
		label, ok := statusLabels[p.NewStatus]
		if !ok {
			label = string(p.NewStatus)
		}
		return "Document status changed",
			fmt.Sprintf("The document '%s' changed status to: '%s'.", p.DocumentName, label),
			nil
	default:
		return "", "", fmt.Errorf("notify: unknown event kind %q", e.Kind)
	}
}
