// Package authz holds the client-side permission rules for projects and
// tasks. Every function is a pure predicate over already-fetched data: no
// I/O, no hidden state, total over nil inputs (nil anything means "no").
//
// These mirror the server's enforcement so the UI can disable actions
// without a round trip. The server remains authoritative: it rejecting an
// action the client allowed is not a bug.
package authz

import "github.com/Tomasivanovich/ProjectManagementApp/internal/api"

// Project roles as the backend reports them in rol_proyecto.
const (
	RoleCreator      = "creador"
	RoleLeader       = "lider"
	RoleCollaborator = "colaborador"
)

func isAdmin(u *api.UserProfile) bool {
	return u.GlobalRole == api.GlobalRoleAdmin
}

func memberRole(p *api.Project, userID int) string {
	if m := p.Member(userID); m != nil {
		return m.ProjectRole
	}
	return ""
}

// CanEditProject reports whether u may change the project's metadata:
// global admins, the project creator, and any member holding the creador
// role.
func CanEditProject(p *api.Project, u *api.UserProfile) bool {
	if p == nil || u == nil {
		return false
	}
	return isAdmin(u) ||
		p.CreatorID == u.ID ||
		memberRole(p, u.ID) == RoleCreator
}

// CanManageProjectMembers reports whether u may invite, re-role, or remove
// members. Deliberately narrower than CanEditProject: a lider never manages
// membership, only global admins and the creator do.
func CanManageProjectMembers(p *api.Project, u *api.UserProfile) bool {
	if p == nil || u == nil {
		return false
	}
	return isAdmin(u) || p.CreatorID == u.ID
}

// CanRemoveMember reports whether u may remove member from the project. The
// creator is never removable, by anyone.
func CanRemoveMember(p *api.Project, member *api.ProjectMember, u *api.UserProfile) bool {
	if p == nil || member == nil {
		return false
	}
	if member.UserID == p.CreatorID {
		return false
	}
	return CanManageProjectMembers(p, u)
}

// CanCreateTask reports whether u may create tasks in the project: admins,
// the creator, and members holding lider or creador.
func CanCreateTask(p *api.Project, u *api.UserProfile) bool {
	if p == nil || u == nil {
		return false
	}
	if isAdmin(u) || p.CreatorID == u.ID {
		return true
	}
	role := memberRole(p, u.ID)
	return role == RoleLeader || role == RoleCreator
}

// CanEditTask reports whether u may change the task's fields: admins, the
// task creator, and callers whose project role is lider or creador.
func CanEditTask(t *api.Task, u *api.UserProfile) bool {
	if t == nil || u == nil {
		return false
	}
	return isAdmin(u) ||
		t.CreatorID == u.ID ||
		t.CallerProjectRole == RoleLeader ||
		t.CallerProjectRole == RoleCreator
}

// CanChangeTaskStatus reports whether u may move the task between states.
// The assignee may always update status, whatever their project role.
func CanChangeTaskStatus(t *api.Task, u *api.UserProfile) bool {
	if t == nil || u == nil {
		return false
	}
	if t.AssigneeID != nil && *t.AssigneeID == u.ID {
		return true
	}
	return CanEditTask(t, u)
}

// CanViewTask reports whether u may see the task's detail. Today this admits
// exactly the same callers as CanChangeTaskStatus, but view and mutate are
// distinct permissions and the rule is stated independently so one can
// change without dragging the other along.
func CanViewTask(t *api.Task, u *api.UserProfile) bool {
	if t == nil || u == nil {
		return false
	}
	if isAdmin(u) || t.CreatorID == u.ID {
		return true
	}
	if t.AssigneeID != nil && *t.AssigneeID == u.ID {
		return true
	}
	return t.CallerProjectRole == RoleLeader || t.CallerProjectRole == RoleCreator
}
