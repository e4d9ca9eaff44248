// Package cli wires the todo command line: the interactive TUI by default
// and scriptable subcommands that run the same flows.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/api"
	"github.com/idilsaglam/todo/internal/auth"
	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/flow"
	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/tui"
	"github.com/idilsaglam/todo/internal/ui"
)

// App carries root flags and the dependencies built from them.
type App struct {
	ConfigPath string
	Theme      string
	APIURL     string
	UserID     int
	Color      bool
	NoColor    bool

	cfg       *config.Config
	log       zerolog.Logger
	logCloser io.Closer
	keyring   auth.Keyring
	ctrl      *flow.Controller
}

func NewApp() *App { return &App{} }

// Close releases the log file. It runs whether or not the command failed,
// which cobra post-run hooks do not.
func (app *App) Close() error {
	if app.logCloser == nil {
		return nil
	}
	err := app.logCloser.Close()
	app.logCloser = nil
	return err
}

// RootCmd builds the command tree bound to app.
func (app *App) RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "todo - a tiny client for your remote todo list",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Scriptable commands
  todo add "Buy milk"
  todo ls --filter active
  todo done 2
  todo rm 3
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), app.ctrl, tui.Options{ErrorTimeout: app.cfg.UI.ErrorTimeout})
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigPath, "config", "", "Path to config file (default ~/.tada/config.toml)")
	pf.StringVar(&app.Theme, "theme", "", "Output theme ("+strings.Join(ui.Themes, "|")+")")
	pf.StringVar(&app.APIURL, "api-url", "", "Base URL of the todos service")
	pf.IntVar(&app.UserID, "user-id", 0, "User whose todos to manage")
	pf.BoolVar(&app.Color, "color", false, "Force colored output")
	pf.BoolVar(&app.NoColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newToggleAllCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newClearCompletedCmd(app))
	cmd.AddCommand(newAuthCmd(app))

	return cmd
}

// setup loads config, applies flag overrides and builds the controller.
// Flags beat env, env beats the config file.
func (app *App) setup(cmd *cobra.Command) error {
	path := app.ConfigPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.UI.Theme = app.Theme
	}
	if flags.Changed("api-url") {
		cfg.API.BaseURL = app.APIURL
	}
	if flags.Changed("user-id") {
		cfg.API.UserID = app.UserID
	}
	if err := cfg.Validate(); err != nil {
		return errUsage("%v", err)
	}
	app.cfg = cfg

	ui.SetTheme(cfg.UI.Theme)
	if app.Color || app.NoColor {
		ui.SetColorForcing(app.Color, app.NoColor)
	}

	log, closer, err := logging.New(cfg.Log, cfg.Env)
	if err != nil {
		return err
	}
	app.log, app.logCloser = log, closer

	dir, err := config.Dir()
	if err != nil {
		return err
	}
	app.keyring = auth.Keyring{Dir: dir}

	client := api.New(cfg.API.BaseURL, cfg.API.UserID,
		api.WithToken(app.keyring.Bearer()),
		api.WithLogger(log.With().Str("component", "api").Logger()),
	)
	st := store.New(store.Initial(cfg.Filter()), store.WithLogger(log.With().Str("component", "store").Logger()))
	app.ctrl = flow.NewController(client, st, cfg.API.UserID, log)

	log.Debug().Str("command", cmd.CommandPath()).Str("api", cfg.API.BaseURL).Int("user_id", cfg.API.UserID).Msg("start")
	return nil
}

func (app *App) out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }

func printHint(cmd *cobra.Command, msg string) {
	fmt.Fprintln(cmd.ErrOrStderr(), ui.For(cmd.ErrOrStderr()).C(ui.Current().Muted, msg))
}
