package api

import (
	"context"
	"fmt"
)

// ListProjectTasks returns the tasks of one project. Each task carries the
// caller's rol_proyecto so permission checks need no extra fetch.
func (c *Client) ListProjectTasks(ctx context.Context, projectID int) ([]Task, error) {
	var tasks []Task
	if err := c.Get(ctx, fmt.Sprintf("/tasks/proyecto/%d", projectID), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches a single task.
func (c *Client) GetTask(ctx context.Context, id int) (*Task, error) {
	var task Task
	if err := c.Get(ctx, fmt.Sprintf("/tasks/%d", id), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task in the project named by t.ProjectID.
func (c *Client) CreateTask(ctx context.Context, t NewTask) (*Task, error) {
	var created Task
	if err := c.Post(ctx, "/tasks", t, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask replaces a task's editable fields.
func (c *Client) UpdateTask(ctx context.Context, id int, t NewTask) (*Task, error) {
	var updated Task
	if err := c.Put(ctx, fmt.Sprintf("/tasks/%d", id), t, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateTaskStatus sets only the task's estado.
func (c *Client) UpdateTaskStatus(ctx context.Context, id int, status string) (*Task, error) {
	body := struct {
		Status string `json:"estado"`
	}{Status: status}
	var updated Task
	if err := c.Put(ctx, fmt.Sprintf("/tasks/%d/status", id), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/tasks/%d", id), nil)
}
