package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/idilsaglam/todo/internal/cli"
	"github.com/idilsaglam/todo/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := cli.NewApp()
	err := app.RootCmd().ExecuteContext(ctx)
	if cerr := app.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
	}
	stop()
	os.Exit(cli.ExitCode(err))
}
