package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tomasivanovich/ProjectManagementApp/internal/api"
	"github.com/Tomasivanovich/ProjectManagementApp/internal/authz"
	"github.com/Tomasivanovich/ProjectManagementApp/internal/validate"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects and their members",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your projects",
	RunE:  runProjectsList,
}

var projectsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a project and its members",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsShow,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsCreate,
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a project's name or description",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsUpdate,
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsDelete,
}

var projectsInviteCmd = &cobra.Command{
	Use:   "invite [id] [email]",
	Short: "Invite a user to a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectsInvite,
}

var projectsMembersCmd = &cobra.Command{
	Use:   "members [id]",
	Short: "List a project's members",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsMembers,
}

var projectsRemoveMemberCmd = &cobra.Command{
	Use:   "remove-member [id] [user-id]",
	Short: "Remove a member from a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectsRemoveMember,
}

var projectsSetRoleCmd = &cobra.Command{
	Use:   "set-role [id] [user-id] [role]",
	Short: "Change a member's project role (lider or colaborador)",
	Args:  cobra.ExactArgs(3),
	RunE:  runProjectsSetRole,
}

var projectsSearchUsersCmd = &cobra.Command{
	Use:   "search-users [id] [term]",
	Short: "Search users to invite to a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectsSearchUsers,
}

func init() {
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsShowCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsUpdateCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	projectsCmd.AddCommand(projectsInviteCmd)
	projectsCmd.AddCommand(projectsMembersCmd)
	projectsCmd.AddCommand(projectsRemoveMemberCmd)
	projectsCmd.AddCommand(projectsSetRoleCmd)
	projectsCmd.AddCommand(projectsSearchUsersCmd)

	projectsCreateCmd.Flags().String("description", "", "Project description")
	projectsUpdateCmd.Flags().String("name", "", "New name")
	projectsUpdateCmd.Flags().String("description", "", "New description")
	projectsInviteCmd.Flags().String("role", "colaborador", "Project role for the invitee")
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %q", what, arg)
	}
	return id, nil
}

// fetchProjectFor loads the project and the current user together, since
// nearly every subcommand needs both for its permission check.
func fetchProjectFor(ctx context.Context, a *app, arg string) (*api.Project, *api.UserProfile, error) {
	user, err := a.requireUser()
	if err != nil {
		return nil, nil, err
	}
	id, err := parseID(arg, "project")
	if err != nil {
		return nil, nil, err
	}
	project, err := a.client.GetProject(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return project, user, nil
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}

	projects, fromCache, err := cachedList(cmd.Context(), a, "projects", a.client.ListProjects)
	if err != nil {
		return err
	}
	staleNotice(fromCache)

	if len(projects) == 0 {
		fmt.Println("No projects.")
		return nil
	}
	for _, p := range projects {
		fmt.Printf("  %4d  %-30s  %d members\n", p.ID, p.Name, len(p.Members))
	}
	return nil
}

func runProjectsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	project, user, err := fetchProjectFor(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (id %d)\n", project.Name, project.ID)
	if project.Description != "" {
		fmt.Println(project.Description)
	}
	fmt.Printf("Creator: %d\n", project.CreatorID)
	fmt.Printf("Members (%d):\n", len(project.Members))
	for _, m := range project.Members {
		fmt.Printf("  %4d  %-20s  %s%s%s\n",
			m.UserID, m.Name, roleColor(m.ProjectRole), m.ProjectRole, colorReset)
	}
	fmt.Printf("You can edit: %v, manage members: %v, create tasks: %v\n",
		authz.CanEditProject(project, user),
		authz.CanManageProjectMembers(project, user),
		authz.CanCreateTask(project, user))
	return nil
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}

	name := args[0]
	if err := validate.ProjectName(name); err != nil {
		return err
	}
	description, _ := cmd.Flags().GetString("description")

	project, err := a.client.CreateProject(cmd.Context(), api.NewProject{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created project %q (id %d)\n", project.Name, project.ID)
	return nil
}

func runProjectsUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	project, user, err := fetchProjectFor(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	if !authz.CanEditProject(project, user) {
		return fmt.Errorf("you do not have permission to edit this project")
	}

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	if name == "" {
		name = project.Name
	}
	if description == "" {
		description = project.Description
	}
	if err := validate.ProjectName(name); err != nil {
		return err
	}

	updated, err := a.client.UpdateProject(cmd.Context(), project.ID, api.NewProject{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Updated project %q\n", updated.Name)
	return nil
}

func runProjectsDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	project, user, err := fetchProjectFor(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	if !authz.CanEditProject(project, user) {
		return fmt.Errorf("you do not have permission to delete this project")
	}

	if err := a.client.DeleteProject(cmd.Context(), project.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted project %d\n", project.ID)
	return nil
}

func runProjectsInvite(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	project, user, err := fetchProjectFor(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	if !authz.CanManageProjectMembers(project, user) {
		return fmt.Errorf("only the project creator or an admin can invite members")
	}

	email := args[1]
	if err := validate.Email(email); err != nil {
		return err
	}
	role, _ := cmd.Flags().GetString("role")
	if err := validate.ProjectRole(role); err != nil {
		return err
	}

	if err := a.client.InviteUser(cmd.Context(), project.ID, email, role); err != nil {
		return err
	}
	fmt.Printf("Invited %s as %s\n", email, role)
	return nil
}

func runProjectsMembers(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	project, user, err := fetchProjectFor(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}

	for _, m := range project.Members {
		removable := authz.CanRemoveMember(project, &m, user)
		marker := " "
		if m.UserID == project.CreatorID {
			marker = "*"
		}
		fmt.Printf("%s %4d  %-20s  %-12s removable=%v\n",
			marker, m.UserID, m.Name, m.ProjectRole, removable)
	}
	return nil
}

func runProjectsRemoveMember(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	project, user, err := fetchProjectFor(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	userID, err := parseID(args[1], "user")
	if err != nil {
		return err
	}

	member := project.Member(userID)
	if member == nil {
		return fmt.Errorf("user %d is not a member of project %d", userID, project.ID)
	}
	if !authz.CanRemoveMember(project, member, user) {
		if member.UserID == project.CreatorID {
			return fmt.Errorf("the project creator cannot be removed")
		}
		return fmt.Errorf("only the project creator or an admin can remove members")
	}

	if err := a.client.RemoveMember(cmd.Context(), project.ID, userID); err != nil {
		return err
	}
	fmt.Printf("Removed %s from %s\n", member.Name, project.Name)
	return nil
}

func runProjectsSetRole(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	project, user, err := fetchProjectFor(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	userID, err := parseID(args[1], "user")
	if err != nil {
		return err
	}
	role := args[2]
	if err := validate.ProjectRole(role); err != nil {
		return err
	}

	if !authz.CanManageProjectMembers(project, user) {
		return fmt.Errorf("only the project creator or an admin can change roles")
	}
	if userID == project.CreatorID {
		return fmt.Errorf("the project creator's role cannot be changed")
	}

	if err := a.client.UpdateMemberRole(cmd.Context(), project.ID, userID, role); err != nil {
		return err
	}
	fmt.Printf("User %d is now %s\n", userID, role)
	return nil
}

func runProjectsSearchUsers(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	project, user, err := fetchProjectFor(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	if !authz.CanManageProjectMembers(project, user) {
		return fmt.Errorf("only the project creator or an admin can search for invitees")
	}

	users, err := a.client.SearchUsers(cmd.Context(), project.ID, args[1])
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Println("No matching users.")
		return nil
	}
	for _, u := range users {
		fmt.Printf("  %4d  %-20s  %s\n", u.ID, u.Name, u.Email)
	}
	return nil
}
