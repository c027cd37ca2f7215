// Package policy is the single source of truth for who may do what. Every
// mutation path consults it instead of checking roles inline; it performs no
// I/O and never panics.
package policy

import "github.com/DS1003/blog-moomel-sub001/internal/models"

type Action string

const (
	// Content mutation: ADMIN only
	ActionCreateArticle      Action = "CREATE_ARTICLE"
	ActionUpdateArticle      Action = "UPDATE_ARTICLE"
	ActionDeleteArticle      Action = "DELETE_ARTICLE"
	ActionManageCategory     Action = "MANAGE_CATEGORY"
	ActionManageBadge        Action = "MANAGE_BADGE"
	ActionManageSettings     Action = "MANAGE_SETTINGS"
	ActionManageGamification Action = "MANAGE_GAMIFICATION"
	ActionManageUsers        Action = "MANAGE_USERS"

	// Moderation: ADMIN or MODERATOR
	ActionHideComment   Action = "HIDE_COMMENT"
	ActionDeleteComment Action = "DELETE_COMMENT"

	// Engagement: any authenticated account
	ActionLikeArticle Action = "LIKE_ARTICLE"
	ActionPostComment Action = "POST_COMMENT"
)

// Decision is always returned, never an error: a deny is an answer, not a
// failure. Callers translate a deny into an access-control rejection at the
// boundary.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Can decides whether an actor with the given role may perform action.
// isOwner is only consulted for actions where ownership matters; role rules
// always win over ownership.
func Can(role models.Role, action Action, isOwner bool) Decision {
	switch action {
	case ActionCreateArticle, ActionUpdateArticle, ActionDeleteArticle,
		ActionManageCategory, ActionManageBadge, ActionManageSettings,
		ActionManageGamification, ActionManageUsers:
		if role == models.RoleAdmin {
			return allow()
		}
		return deny("admin role required")

	case ActionHideComment, ActionDeleteComment:
		if role == models.RoleAdmin || role == models.RoleModerator {
			return allow()
		}
		return deny("moderator or admin role required")

	case ActionLikeArticle, ActionPostComment:
		// Any authenticated account, regardless of role
		return allow()

	default:
		return deny("unknown action")
	}
}

// AccountEdit describes the parts of an account edit the policy cares about.
type AccountEdit struct {
	Demotes     bool // role changed away from its current value for an admin
	Deactivates bool // isActive set to false
}

// CanEditAccount gates role/active-status edits. Only admins may edit, and an
// admin may never demote or deactivate itself.
func CanEditAccount(actorRole models.Role, actorID, targetID string, edit AccountEdit) Decision {
	if actorRole != models.RoleAdmin {
		return deny("admin role required")
	}
	if actorID == targetID {
		if edit.Demotes {
			return deny("an admin cannot change its own role")
		}
		if edit.Deactivates {
			return deny("an admin cannot deactivate itself")
		}
	}
	return allow()
}

// CanDeleteAccount gates account deletion. An admin may never delete itself
// through this path.
func CanDeleteAccount(actorRole models.Role, actorID, targetID string) Decision {
	if actorRole != models.RoleAdmin {
		return deny("admin role required")
	}
	if actorID == targetID {
		return deny("an admin cannot delete its own account")
	}
	return allow()
}
