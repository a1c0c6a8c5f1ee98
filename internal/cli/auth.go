package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/Tomasivanovich/ProjectManagementApp/internal/oauth"
	"github.com/Tomasivanovich/ProjectManagementApp/internal/session"
	"github.com/Tomasivanovich/ProjectManagementApp/internal/validate"
)

const oauthWait = 5 * time.Minute

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email/password or an OAuth provider",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the local session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the session token",
	RunE:  runRefresh,
}

func init() {
	loginCmd.Flags().String("email", "", "Account email (prompted if omitted)")
	loginCmd.Flags().String("password", "", "Account password (prompted if omitted)")
	loginCmd.Flags().Bool("google", false, "Sign in with Google")
	loginCmd.Flags().Bool("discord", false, "Sign in with Discord")

	registerCmd.Flags().String("name", "", "Display name")
	registerCmd.Flags().String("email", "", "Account email")
	registerCmd.Flags().String("password", "", "Account password (prompted if omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	google, _ := cmd.Flags().GetBool("google")
	discord, _ := cmd.Flags().GetBool("discord")
	if google && discord {
		return fmt.Errorf("pick one of --google or --discord")
	}
	if google {
		return loginWithProvider(cmd.Context(), a, session.ProviderGoogle)
	}
	if discord {
		return loginWithProvider(cmd.Context(), a, session.ProviderDiscord)
	}

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if email == "" {
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}
	if password == "" {
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	if err := validate.Email(email); err != nil {
		return err
	}
	if err := validate.Password(password); err != nil {
		return err
	}

	sess, err := a.sessions.Login(cmd.Context(), email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
	return nil
}

func loginWithProvider(ctx context.Context, a *app, provider string) error {
	var p oauth.Provider
	switch provider {
	case session.ProviderGoogle:
		p = oauth.Google(a.cfg.OAuth.Google.ClientID)
	case session.ProviderDiscord:
		p = oauth.Discord(a.cfg.OAuth.Discord.ClientID)
	}
	if p.ClientID == "" {
		return fmt.Errorf("no %s client ID configured (see 'pmapp config init')", provider)
	}

	listener, err := oauth.Listen(a.cfg.OAuth.CallbackPort)
	if err != nil {
		return err
	}
	defer listener.Close()

	fmt.Println("Open this URL in a browser to sign in:")
	fmt.Println()
	fmt.Println("  " + p.AuthorizeURL(listener.RedirectURI(), listener.State()))
	fmt.Println()
	fmt.Println("Waiting for the browser to complete sign-in...")

	waitCtx, cancel := context.WithTimeout(ctx, oauthWait)
	defer cancel()
	accessToken, err := listener.Wait(waitCtx)
	if err != nil {
		return fmt.Errorf("sign-in not completed: %w", err)
	}

	sess, err := a.sessions.LoginWithOAuthToken(ctx, provider, accessToken)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	if name == "" {
		name, err = promptLine("Name: ")
		if err != nil {
			return err
		}
	}
	if email == "" {
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}
	if password == "" {
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	if err := validate.Email(email); err != nil {
		return err
	}
	if err := validate.Password(password); err != nil {
		return err
	}

	sess, err := a.sessions.Register(cmd.Context(), name, email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Account created. Logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.sessions.Logout()
	if a.cache != nil {
		_ = a.cache.Clear()
	}
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireUser()
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> (%s, id %d)\n", user.Name, user.Email, user.GlobalRole, user.ID)
	return nil
}

func runRefresh(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}
	if _, err := a.sessions.Refresh(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Session refreshed.")
	return nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	return readTrimmedLine(os.Stdin)
}

// readTrimmedLine consumes exactly one line from r, one byte at a time.
// A buffered reader would read ahead past the newline and swallow input
// that readline.Password later expects to find on the raw descriptor.
func readTrimmedLine(r io.Reader) (string, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			line = append(line, buf[0])
		}
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				break
			}
			return "", err
		}
	}
	return strings.TrimSpace(string(line)), nil
}

func promptPassword(prompt string) (string, error) {
	password, err := readline.Password(prompt)
	if err != nil {
		return "", err
	}
	return string(password), nil
}
