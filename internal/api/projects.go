package api

import (
	"context"
	"fmt"
	"net/url"
)

// ListProjects returns every project visible to the current user.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.Get(ctx, "/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches one project with its member list.
func (c *Client) GetProject(ctx context.Context, id int) (*Project, error) {
	var project Project
	if err := c.Get(ctx, fmt.Sprintf("/projects/%d", id), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a project; the caller becomes its creador.
func (c *Client) CreateProject(ctx context.Context, p NewProject) (*Project, error) {
	var created Project
	if err := c.Post(ctx, "/projects", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject replaces a project's name and description.
func (c *Client) UpdateProject(ctx context.Context, id int, p NewProject) (*Project, error) {
	var updated Project
	if err := c.Put(ctx, fmt.Sprintf("/projects/%d", id), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject removes a project and everything in it.
func (c *Client) DeleteProject(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/projects/%d", id), nil)
}

// InviteUser invites a user by email with the given project role.
func (c *Client) InviteUser(ctx context.Context, projectID int, email, role string) error {
	body := struct {
		Email string `json:"email"`
		Role  string `json:"rol_proyecto"`
	}{Email: email, Role: role}
	return c.Post(ctx, fmt.Sprintf("/projects/%d/invite", projectID), body, nil)
}

// UpdateMemberRole changes an existing member's project role.
func (c *Client) UpdateMemberRole(ctx context.Context, projectID, userID int, role string) error {
	body := struct {
		UserID int    `json:"id_usuario"`
		Role   string `json:"rol_proyecto"`
	}{UserID: userID, Role: role}
	return c.Patch(ctx, fmt.Sprintf("/projects/%d/role", projectID), body, nil)
}

// RemoveMember removes a member from a project. The backend rejects removing
// the creator; callers should check authz.CanRemoveMember first to avoid the
// round trip, but the server's answer is authoritative either way.
func (c *Client) RemoveMember(ctx context.Context, projectID, userID int) error {
	body := struct {
		UserID int `json:"id_usuario"`
	}{UserID: userID}
	return c.Delete(ctx, fmt.Sprintf("/projects/%d/members", projectID), body)
}

// SearchUsers finds users matching term who can be invited to the project.
func (c *Client) SearchUsers(ctx context.Context, projectID int, term string) ([]UserProfile, error) {
	var users []UserProfile
	path := fmt.Sprintf("/projects/%d/users/search?search=%s", projectID, url.QueryEscape(term))
	if err := c.Get(ctx, path, &users); err != nil {
		return nil, err
	}
	return users, nil
}
