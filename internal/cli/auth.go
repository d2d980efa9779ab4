package cli

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pasogott/gurkerlcli/internal/auth"
	"github.com/pasogott/gurkerlcli/internal/session"
	pkgerrors "github.com/pasogott/gurkerlcli/pkg/errors"
	"github.com/pasogott/gurkerlcli/pkg/gurkerl"
)

func (a *App) newAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the login session",
	}
	cmd.AddCommand(
		a.newLoginCommand(),
		a.newLogoutCommand(),
		a.newWhoamiCommand(),
	)
	return cmd
}

func (a *App) newLoginCommand() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if email == "" {
				fmt.Fprint(a.errOut, "Email: ")
				line, err := a.readLine()
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read email")
				}
				email = line
			}
			if err := validator.New().Var(email, "required,email"); err != nil {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid email address: %q", email))
			}

			if password == "" {
				if stored, ok := auth.DefaultResolverChain().Resolve(email); ok {
					password = stored
					a.logg.Debug(ctx, "password resolved from credential chain")
				}
			}
			if password == "" {
				value, err := a.promptPassword("Password: ")
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read password")
				}
				password = value
			}
			if password == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "password must not be empty")
			}

			a.warnAboutDotEnv()

			ctx = a.logg.WithUserEmail(ctx, email)
			mgr := auth.NewManager(gurkerl.NewClient(a.clientOptions()...), a.sessionStore())
			sess, err := mgr.Login(ctx, email, password)
			if err != nil {
				return err
			}

			a.printer.Success(fmt.Sprintf("Logged in as %s", email))
			if sess.ExpiresAt != nil {
				a.printer.Info(fmt.Sprintf("Session valid until %s", sess.ExpiresAt.Format("2006-01-02 15:04")))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email address")
	cmd.Flags().StringVar(&password, "password", "", "account password (prefer the keyring or GURKERL_PASSWORD)")
	return cmd
}

func (a *App) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(_ *cobra.Command, _ []string) error {
			store := a.sessionStore()
			if err := store.Clear(); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear session")
			}
			a.printer.Success("Logged out")
			return nil
		},
	}
}

func (a *App) newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(_ *cobra.Command, _ []string) error {
			sess, status, err := a.sessionStore().LoadWithStatus()
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load session")
			}

			switch status {
			case session.StatusExpired:
				a.printer.Warn("Session expired, run 'gurkerlcli auth login' to login again")
			case session.StatusAbsent:
				a.printer.Info("Not logged in, run 'gurkerlcli auth login' to login")
			default:
				email := sess.UserEmail
				if email == "" {
					email = "(unknown account)"
				}
				a.printer.Success(fmt.Sprintf("Logged in as %s", email))
				a.printer.Info(fmt.Sprintf("Session created %s", sess.CreatedAt.Format("2006-01-02 15:04")))
				if sess.ExpiresAt != nil {
					a.printer.Info(fmt.Sprintf("Session valid until %s", sess.ExpiresAt.Format("2006-01-02 15:04")))
				}
			}
			return nil
		},
	}
}

// promptPassword reads a password without echo when stdin is a terminal and
// falls back to a plain line read otherwise, so piped input keeps working.
func (a *App) promptPassword(prompt string) (string, error) {
	fmt.Fprint(a.errOut, prompt)
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		defer fmt.Fprintln(a.errOut)
		value, err := term.ReadPassword(int(f.Fd()))
		return string(value), err
	}
	return a.readLine()
}

// warnAboutDotEnv flags a plaintext password sitting in a local .env file.
func (a *App) warnAboutDotEnv() {
	if os.Getenv("GURKERL_PASSWORD") == "" {
		return
	}
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	a.printer.Warn("GURKERL_PASSWORD is set and a .env file exists, consider the OS keyring instead of a plaintext password")
}
