// Package permissions maps roles to the actions they may perform.
package permissions

import (
	"slices"

	"github.com/dmitrijs2005/docflow/internal/server/models"
)

type Action string

const (
	ActionUpload Action = "upload"
	ActionReview Action = "review"
	ActionSign   Action = "sign"
	ActionReject Action = "reject"
	ActionManage Action = "manage"
)

func Actions() []Action {
	return []Action{ActionUpload, ActionReview, ActionSign, ActionReject, ActionManage}
}

// AllowedActions returns the actions granted to role. Unknown roles get none.
func AllowedActions(role models.Role) []Action {
	switch role {
	case models.RoleEmployee:
		return []Action{ActionUpload}
	case models.RoleSupervisor:
		return []Action{ActionReview, ActionSign, ActionReject}
	case models.RoleSigner:
		return []Action{ActionSign}
	case models.RoleInstitutionalManager:
		return []Action{ActionReview, ActionSign, ActionReject, ActionManage}
	case models.RoleAdmin:
		return []Action{ActionUpload, ActionReview, ActionSign, ActionReject, ActionManage}
	default:
		return nil
	}
}

func Can(role models.Role, action Action) bool {
	return slices.Contains(AllowedActions(role), action)
}

// SeesAllDocuments reports whether role lists every document rather than
// only the ones it owns.
func SeesAllDocuments(role models.Role) bool {
	return Can(role, ActionReview) && role != models.RoleSigner
}
