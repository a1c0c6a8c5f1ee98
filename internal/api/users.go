package api

import (
	"context"
	"fmt"
)

// ListUsers returns all users. Restricted server-side to admins.
func (c *Client) ListUsers(ctx context.Context) ([]UserProfile, error) {
	var users []UserProfile
	if err := c.Get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user's profile.
func (c *Client) GetUser(ctx context.Context, id int) (*UserProfile, error) {
	var user UserProfile
	if err := c.Get(ctx, fmt.Sprintf("/users/%d", id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces a user's profile. The session's stored copy is updated
// separately via session.Manager.UpdateProfile.
func (c *Client) UpdateUser(ctx context.Context, id int, u UserProfile) (*UserProfile, error) {
	var updated UserProfile
	if err := c.Put(ctx, fmt.Sprintf("/users/%d", id), u, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
