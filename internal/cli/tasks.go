package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tomasivanovich/ProjectManagementApp/internal/api"
	"github.com/Tomasivanovich/ProjectManagementApp/internal/authz"
	"github.com/Tomasivanovich/ProjectManagementApp/internal/taskstate"
	"github.com/Tomasivanovich/ProjectManagementApp/internal/validate"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List a project's tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksList,
}

var tasksShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksShow,
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create [project-id] [title]",
	Short: "Create a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runTasksCreate,
}

var tasksUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a task's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksUpdate,
}

var tasksStatusCmd = &cobra.Command{
	Use:   "status [id] [estado]",
	Short: "Set a task's status (pendiente, en progreso, completada)",
	Args:  cobra.ExactArgs(2),
	RunE:  runTasksStatus,
}

var tasksNextCmd = &cobra.Command{
	Use:   "next [id]",
	Short: "Advance a task to the next status in the cycle",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksNext,
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksDelete,
}

func init() {
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksShowCmd)
	tasksCmd.AddCommand(tasksCreateCmd)
	tasksCmd.AddCommand(tasksUpdateCmd)
	tasksCmd.AddCommand(tasksStatusCmd)
	tasksCmd.AddCommand(tasksNextCmd)
	tasksCmd.AddCommand(tasksDeleteCmd)

	tasksListCmd.Flags().String("status", "", "Only show tasks with this status")
	tasksListCmd.Flags().Bool("overdue", false, "Only show overdue tasks")

	tasksCreateCmd.Flags().String("description", "", "Task description")
	tasksCreateCmd.Flags().Int("assignee", 0, "User ID to assign the task to")
	tasksCreateCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")

	tasksUpdateCmd.Flags().String("title", "", "New title")
	tasksUpdateCmd.Flags().String("description", "", "New description")
	tasksUpdateCmd.Flags().Int("assignee", 0, "New assignee user ID")
	tasksUpdateCmd.Flags().String("due", "", "New due date (YYYY-MM-DD)")
}

func fetchTaskFor(ctx context.Context, a *app, arg string) (*api.Task, *api.UserProfile, error) {
	user, err := a.requireUser()
	if err != nil {
		return nil, nil, err
	}
	id, err := parseID(arg, "task")
	if err != nil {
		return nil, nil, err
	}
	task, err := a.client.GetTask(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return task, user, nil
}

func parseDue(arg string) (*time.Time, error) {
	if arg == "" {
		return nil, nil
	}
	due, err := time.Parse("2006-01-02", arg)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", arg)
	}
	return &due, nil
}

func printTaskLine(t *api.Task, now time.Time) {
	status := taskstate.Status(t.Status)
	overdue := ""
	if taskstate.IsOverdue(t, now) {
		overdue = "  OVERDUE"
	}
	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format("2006-01-02")
	}
	fmt.Printf("  %4d  %s%-12s%s  %-35s  %10s%s\n",
		t.ID, statusColor(status), t.Status, colorReset, t.Title, due, overdue)
}

func runTasksList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}
	projectID, err := parseID(args[0], "project")
	if err != nil {
		return err
	}

	statusFilter, _ := cmd.Flags().GetString("status")
	if statusFilter != "" && !taskstate.Valid(taskstate.Status(statusFilter)) {
		return fmt.Errorf("unknown status %q", statusFilter)
	}
	overdueOnly, _ := cmd.Flags().GetBool("overdue")

	key := fmt.Sprintf("tasks/%d", projectID)
	tasks, fromCache, err := cachedList(cmd.Context(), a, key, func(ctx context.Context) ([]api.Task, error) {
		return a.client.ListProjectTasks(ctx, projectID)
	})
	if err != nil {
		return err
	}
	staleNotice(fromCache)

	now := time.Now()
	shown := 0
	for i := range tasks {
		t := &tasks[i]
		if statusFilter != "" && t.Status != statusFilter {
			continue
		}
		if overdueOnly && !taskstate.IsOverdue(t, now) {
			continue
		}
		printTaskLine(t, now)
		shown++
	}
	if shown == 0 {
		fmt.Println("No tasks.")
	}
	return nil
}

func runTasksShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	task, user, err := fetchTaskFor(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	if !authz.CanViewTask(task, user) {
		return fmt.Errorf("you do not have permission to view this task")
	}

	status := taskstate.Status(task.Status)
	fmt.Printf("%s (id %d)\n", task.Title, task.ID)
	if task.Description != "" {
		fmt.Println(task.Description)
	}
	fmt.Printf("Status:   %s%s%s\n", statusColor(status), task.Status, colorReset)
	if task.AssigneeID != nil {
		name := task.AssigneeName
		if name == "" {
			name = fmt.Sprintf("user %d", *task.AssigneeID)
		}
		fmt.Printf("Assignee: %s\n", name)
	}
	if task.DueDate != nil {
		line := task.DueDate.Format("2006-01-02")
		if taskstate.IsOverdue(task, time.Now()) {
			line += "  (overdue)"
		}
		fmt.Printf("Due:      %s\n", line)
	}
	if authz.CanChangeTaskStatus(task, user) {
		var names []string
		for _, s := range taskstate.AvailableTransitions(status) {
			names = append(names, string(s))
		}
		fmt.Printf("Transitions: %v\n", names)
	}
	fmt.Printf("You can edit: %v, change status: %v\n",
		authz.CanEditTask(task, user),
		authz.CanChangeTaskStatus(task, user))
	return nil
}

func runTasksCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	project, user, err := fetchProjectFor(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	if !authz.CanCreateTask(project, user) {
		return fmt.Errorf("you do not have permission to create tasks in this project")
	}

	title := args[1]
	if err := validate.TaskTitle(title); err != nil {
		return err
	}
	description, _ := cmd.Flags().GetString("description")
	dueArg, _ := cmd.Flags().GetString("due")
	due, err := parseDue(dueArg)
	if err != nil {
		return err
	}

	newTask := api.NewTask{
		Title:       title,
		Description: description,
		ProjectID:   project.ID,
		DueDate:     due,
	}
	if assignee, _ := cmd.Flags().GetInt("assignee"); assignee > 0 {
		newTask.AssigneeID = &assignee
	}

	task, err := a.client.CreateTask(cmd.Context(), newTask)
	if err != nil {
		return err
	}
	fmt.Printf("Created task %q (id %d)\n", task.Title, task.ID)
	return nil
}

func runTasksUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	task, user, err := fetchTaskFor(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	if !authz.CanEditTask(task, user) {
		return fmt.Errorf("you do not have permission to edit this task")
	}

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	dueArg, _ := cmd.Flags().GetString("due")
	if title == "" {
		title = task.Title
	}
	if description == "" {
		description = task.Description
	}
	if err := validate.TaskTitle(title); err != nil {
		return err
	}

	updated := api.NewTask{
		Title:       title,
		Description: description,
		ProjectID:   task.ProjectID,
		AssigneeID:  task.AssigneeID,
		DueDate:     task.DueDate,
	}
	if assignee, _ := cmd.Flags().GetInt("assignee"); assignee > 0 {
		updated.AssigneeID = &assignee
	}
	if dueArg != "" {
		due, err := parseDue(dueArg)
		if err != nil {
			return err
		}
		updated.DueDate = due
	}

	result, err := a.client.UpdateTask(cmd.Context(), task.ID, updated)
	if err != nil {
		return err
	}
	fmt.Printf("Updated task %q\n", result.Title)
	return nil
}

func runTasksStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	task, user, err := fetchTaskFor(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	if !authz.CanChangeTaskStatus(task, user) {
		return fmt.Errorf("you do not have permission to change this task's status")
	}

	status := taskstate.Status(args[1])
	if !taskstate.Valid(status) {
		return fmt.Errorf("unknown status %q", args[1])
	}

	updated, err := a.client.UpdateTaskStatus(cmd.Context(), task.ID, string(status))
	if err != nil {
		return err
	}
	fmt.Printf("Task %d is now %s\n", updated.ID, updated.Status)
	return nil
}

func runTasksNext(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	task, user, err := fetchTaskFor(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	if !authz.CanChangeTaskStatus(task, user) {
		return fmt.Errorf("you do not have permission to change this task's status")
	}

	next := taskstate.Next(taskstate.Status(task.Status))
	updated, err := a.client.UpdateTaskStatus(cmd.Context(), task.ID, string(next))
	if err != nil {
		return err
	}
	fmt.Printf("Task %d: %s -> %s\n", updated.ID, task.Status, updated.Status)
	return nil
}

func runTasksDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	task, user, err := fetchTaskFor(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	if !authz.CanEditTask(task, user) {
		return fmt.Errorf("you do not have permission to delete this task")
	}

	if err := a.client.DeleteTask(cmd.Context(), task.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted task %d\n", task.ID)
	return nil
}
