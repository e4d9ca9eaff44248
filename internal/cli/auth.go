package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/auth"
	"github.com/idilsaglam/todo/internal/ui"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Token authentication",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "login",
		Short: "Store a token read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), "Paste your token: ")
			var token string
			if _, err := fmt.Fscanln(cmd.InOrStdin(), &token); err != nil {
				return fmt.Errorf("read token: %w", err)
			}
			if err := app.keyring.Save(token, nil); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "logged in")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Delete the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, _ := app.keyring.Token()
			if ti != nil && ti.Source == "env" {
				ui.OK(cmd.OutOrStdout(), "token is provided by "+auth.EnvToken+" env var (nothing to delete)")
				return nil
			}
			if err := app.keyring.Delete(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "logged out")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show where the token comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			ti, err := app.keyring.Token()
			if err != nil {
				return err
			}
			if ti == nil {
				fmt.Fprintln(w, ui.For(w).C(ui.Current().Muted, "not logged in"))
				fmt.Fprintln(w, "Run: todo auth login")
				return nil
			}
			fmt.Fprintf(w, "source: %s\n", ti.Source)
			if ti.ExpiresAt != nil {
				fmt.Fprintf(w, "expires: %s\n", ti.ExpiresAt.UTC().Format(time.RFC3339))
			} else {
				fmt.Fprintln(w, "expires: (unknown)")
			}
			fmt.Fprintln(w, "env override: "+auth.EnvToken)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Decode the token payload locally (JWT only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			ti, _ := app.keyring.Token()
			if ti == nil {
				return errUsage("not logged in. Set %s or run `todo auth login`", auth.EnvToken)
			}
			if payload, ok := auth.JWTPayload(ti.Token); ok {
				fmt.Fprintln(w, "JWT payload:")
				fmt.Fprintln(w, payload)
				return nil
			}
			fmt.Fprintln(w, "Opaque token (cannot introspect locally).")
			fmt.Fprintln(w, "source:", ti.Source)
			return nil
		},
	})
	return cmd
}
