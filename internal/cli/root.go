package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pasogott/gurkerlcli/internal/display"
	"github.com/pasogott/gurkerlcli/internal/session"
	"github.com/pasogott/gurkerlcli/pkg/config"
	pkgerrors "github.com/pasogott/gurkerlcli/pkg/errors"
	"github.com/pasogott/gurkerlcli/pkg/gurkerl"
	"github.com/pasogott/gurkerlcli/pkg/logger"
)

const version = "0.1.0"

// App carries the wiring every command needs: config, logger, printer and the
// three standard streams. There is no global state, tests build their own App
// against buffers and a throwaway config dir.
type App struct {
	cfg     *config.Config
	logg    *logger.Logger
	printer *display.Printer

	in     io.Reader
	stdin  *bufio.Reader
	out    io.Writer
	errOut io.Writer

	jsonOut bool
	debug   bool
}

func NewApp(cfg *config.Config, in io.Reader, out, errOut io.Writer) *App {
	return &App{
		cfg:    cfg,
		in:     in,
		out:    out,
		errOut: errOut,
	}
}

// Execute runs one CLI invocation and returns the process exit code. Typed
// errors map through their code metadata, anything else exits 1.
func (a *App) Execute(ctx context.Context, args []string) int {
	root := a.newRootCommand()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		a.reportError(err)
		return pkgerrors.ExitCode(err)
	}
	return 0
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "gurkerlcli",
		Short:   "Command line client for the gurkerl.at grocery delivery service",
		Version: version,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := logger.ParseLevel(a.cfg.App.LogLevel)
			if a.debug {
				level = zerolog.DebugLevel
			}
			a.logg = logger.New(logger.Options{
				ServiceName: "gurkerlcli",
				Level:       level,
				Output:      a.errOut,
			})
			a.printer = display.New(a.out, a.errOut)

			ctx := a.logg.WithInvocationID(cmd.Context(), uuid.NewString())
			ctx = a.logg.WithField(ctx, "command", cmd.CommandPath())
			cmd.SetContext(ctx)
		},
	}

	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetIn(a.in)

	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print machine-readable JSON instead of tables")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging and error chains")

	root.AddCommand(
		a.newAuthCommand(),
		a.newSearchCommand(),
		a.newCartCommand(),
		a.newListsCommand(),
		a.newOrdersCommand(),
	)

	return root
}

// reportError prints the human-facing error line and, with --debug, the full
// unwrap chain.
func (a *App) reportError(err error) {
	if a.printer == nil {
		a.printer = display.New(a.out, a.errOut)
	}

	msg := err.Error()
	if typed := pkgerrors.As(err); typed != nil {
		msg = typed.Message()
	}
	a.printer.Error(msg)

	if a.debug {
		dump := pkgerrors.Dump(err)
		if dump.Code != "" {
			fmt.Fprintf(a.errOut, "  code: %s\n", dump.Code)
		}
		for _, entry := range dump.Chain {
			fmt.Fprintf(a.errOut, "  caused by: %s\n", entry)
		}
	}
}

func (a *App) sessionStore() *session.Store {
	return session.NewStore(a.cfg.App.ConfigDir)
}

func (a *App) clientOptions() []gurkerl.Option {
	return []gurkerl.Option{
		gurkerl.WithBaseURL(a.cfg.API.BaseURL),
		gurkerl.WithTimeout(a.cfg.API.Timeout),
		gurkerl.WithUserAgent(a.cfg.API.UserAgent),
		gurkerl.WithLogger(a.logg),
	}
}

// requireSession loads the stored session or fails with an UNAUTHORIZED error
// telling the user to login.
func (a *App) requireSession() (*session.Session, error) {
	sess, err := a.sessionStore().Load()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load session")
	}
	if sess == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not logged in, run 'gurkerlcli auth login' first")
	}
	return sess, nil
}

// apiClient builds the authenticated client carrying the stored cookies.
func (a *App) apiClient() (*gurkerl.Client, error) {
	sess, err := a.requireSession()
	if err != nil {
		return nil, err
	}
	return gurkerl.NewClient(append(a.clientOptions(), gurkerl.WithCookies(sess.Cookies))...), nil
}

// searchClient builds the client for search endpoints, which strips the
// cookie that makes the upstream serve stale cached results.
func (a *App) searchClient() (*gurkerl.Client, error) {
	sess, err := a.requireSession()
	if err != nil {
		return nil, err
	}
	return gurkerl.NewSearchClient(sess.Cookies, a.clientOptions()...), nil
}

// readLine reads one line from stdin through a reader that persists across
// prompts, so consecutive reads never lose buffered input.
func (a *App) readLine() (string, error) {
	if a.stdin == nil {
		a.stdin = bufio.NewReader(a.in)
	}
	line, err := a.stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// parsePositiveInt parses a numeric CLI argument, rejecting zero and
// negatives with a validation error.
func parsePositiveInt(value, label string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s: %q", label, value))
	}
	return n, nil
}

// confirm asks a yes/no question on the error stream, defaulting to no.
func (a *App) confirm(prompt string) bool {
	fmt.Fprintf(a.errOut, "%s [y/N]: ", prompt)
	answer, err := a.readLine()
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
