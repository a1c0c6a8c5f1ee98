package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tomasivanovich/ProjectManagementApp/internal/api"
	"github.com/Tomasivanovich/ProjectManagementApp/internal/validate"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users (admin only)",
	RunE:  runUsersList,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE:  runWhoami,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your name or email",
	RunE:  runProfileUpdate,
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)

	profileUpdateCmd.Flags().String("name", "", "New display name")
	profileUpdateCmd.Flags().String("email", "", "New email address")
}

func runUsersList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireUser()
	if err != nil {
		return err
	}
	if user.GlobalRole != api.GlobalRoleAdmin {
		return fmt.Errorf("listing users requires the admin role")
	}

	users, err := a.client.ListUsers(cmd.Context())
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Printf("  %4d  %-20s  %-30s  %s\n", u.ID, u.Name, u.Email, u.GlobalRole)
	}
	return nil
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireUser()
	if err != nil {
		return err
	}

	updated := *user
	if name, _ := cmd.Flags().GetString("name"); name != "" {
		updated.Name = name
	}
	if email, _ := cmd.Flags().GetString("email"); email != "" {
		if err := validate.Email(email); err != nil {
			return err
		}
		updated.Email = email
	}
	if updated == *user {
		return fmt.Errorf("nothing to update (pass --name or --email)")
	}

	// Save server-side first; only then replace the local copy.
	saved, err := a.client.UpdateUser(cmd.Context(), user.ID, updated)
	if err != nil {
		return err
	}
	if saved.ID == 0 {
		saved = &updated
	}
	if err := a.sessions.UpdateProfile(*saved); err != nil {
		return err
	}
	fmt.Printf("Profile updated: %s <%s>\n", saved.Name, saved.Email)
	return nil
}
