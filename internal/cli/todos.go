package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/flow"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/ui"
)

func newListCmd(app *App) *cobra.Command {
	var (
		group  bool
		filter string
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("filter") {
				f, err := model.ParseFilter(filter)
				if err != nil {
					return errUsage("%v", err)
				}
				app.ctrl.SetFilter(f)
			}
			if err := app.ctrl.Load(cmd.Context()); err != nil {
				return err
			}
			st := app.ctrl.Store().State()
			ui.Panel(app.out(cmd), listLines(st, group, ui.For(app.out(cmd))))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group output by pending/done")
	cmd.Flags().StringVar(&filter, "filter", "", "Show all, active or completed todos")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new todo (title can be multiple words)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ctrl.Load(cmd.Context()); err != nil {
				return err
			}
			todo, err := app.ctrl.Create(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			ui.OK(app.out(cmd), fmt.Sprintf("added #%d %s", todo.ID, todo.Title))
			return nil
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for the todo at a 1-based index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, err := app.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			if err := app.ctrl.Toggle(cmd.Context(), todo.ID); err != nil {
				return err
			}
			ui.OK(app.out(cmd), "toggled")
			return nil
		},
	}
}

func newToggleAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-all",
		Short: "Complete every todo, or reopen all when all are done",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ctrl.Load(cmd.Context()); err != nil {
				return err
			}
			if err := app.ctrl.ToggleAll(cmd.Context()); err != nil {
				return err
			}
			st := app.ctrl.Store().State()
			ui.OK(app.out(cmd), fmt.Sprintf("toggled (%d active, %d completed)", st.ActiveCount(), st.CompletedCount()))
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <title...>",
		Short: "Rename the todo at a 1-based index (an empty title deletes it)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, err := app.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			var e flow.Editor
			e.Begin(todo)
			e.SetBuffer(strings.Join(args[1:], " "))
			plan, _ := e.Plan()
			if err := app.ctrl.SubmitEdit(cmd.Context(), &e); err != nil {
				return err
			}
			ui.OK(app.out(cmd), editResult[plan])
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove"},
		Short:   "Remove the todo at a 1-based index",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, err := app.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			if err := app.ctrl.Remove(cmd.Context(), todo.ID); err != nil {
				return err
			}
			ui.OK(app.out(cmd), "removed")
			return nil
		},
	}
}

func newClearCompletedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ctrl.Load(cmd.Context()); err != nil {
				return err
			}
			before := app.ctrl.Store().State().CompletedCount()
			err := app.ctrl.ClearCompleted(cmd.Context())
			cleared := before - app.ctrl.Store().State().CompletedCount()
			if err != nil {
				return err
			}
			ui.OK(app.out(cmd), fmt.Sprintf("cleared %d", cleared))
			return nil
		},
	}
}

// resolve loads the list and returns the todo at a 1-based index.
func (app *App) resolve(cmd *cobra.Command, arg string) (model.Todo, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return model.Todo{}, errUsage("%s: not a number: %s", cmd.Name(), arg)
	}
	if err := app.ctrl.Load(cmd.Context()); err != nil {
		return model.Todo{}, err
	}
	todos := app.ctrl.Store().State().Todos
	if n < 1 || n > len(todos) {
		printHint(cmd, "Hint: run `todo ls` to see valid indexes")
		return model.Todo{}, errUsage("index out of range: have %d, got %d", len(todos), n)
	}
	return todos[n-1], nil
}
