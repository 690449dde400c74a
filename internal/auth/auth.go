// Package auth provides token issuance, password hashing, and the
// role-to-permission model used by the API and dashboard modules.
//
// Permissions are identified by codenames of the form action_entity, such as
// view_product or change_category. Roles grant sets of codenames rather than
// being checked directly, so handlers declare the permission they need and
// stay ignorant of the role taxonomy.
package auth

import "strings"

// Permission actions. Combined with an entity name they form a codename.
const (
	ActionView   = "view"
	ActionAdd    = "add"
	ActionChange = "change"
	ActionDelete = "delete"
)

// Role determines which permission codenames a user holds.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// Codename builds a permission codename from an action and an entity name.
func Codename(action, entity string) string {
	return action + "_" + entity
}

// Can reports whether the role grants the permission codename.
//
// Admins hold every permission. Editors can view, add, and change catalog
// entities but cannot delete, and cannot touch user accounts. Viewers can
// only view catalog entities.
func (r Role) Can(codename string) bool {
	action, entity, ok := splitCodename(codename)
	if !ok {
		return false
	}

	switch r {
	case RoleAdmin:
		return true
	case RoleEditor:
		if entity == "user" {
			return false
		}
		return action == ActionView || action == ActionAdd || action == ActionChange
	case RoleViewer:
		if entity == "user" {
			return false
		}
		return action == ActionView
	}
	return false
}

func splitCodename(codename string) (action, entity string, ok bool) {
	action, entity, ok = strings.Cut(codename, "_")
	if !ok || action == "" || entity == "" {
		return "", "", false
	}
	return action, entity, true
}
