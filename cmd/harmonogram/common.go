package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/klabast/wb-services/harmonogram/internal/app"
	"github.com/klabast/wb-services/harmonogram/internal/commands"
)

var errInputRequired = errors.New("no input sheet given")

func runConvert(ctx *cli.Context) error {
	if !ctx.Args().Present() {
		if ctx.Command.Name == "" {
			return help(ctx)
		}
		return printErrWithCmdHelp(ctx, errInputRequired)
	}

	input := ctx.Args().First()
	output := ctx.Args().Get(1)
	if output == "" {
		output = app.DefaultOutputFile
	}

	leads, err := app.ParseReminders([]string(reminders))
	if err != nil {
		return err
	}

	return app.Convert(afero.NewOsFs(), app.ConvertOptions{
		InputPath:    input,
		OutputPath:   output,
		Format:       outputFormat,
		CalendarName: calendarName,
		Reminders:    leads,
		HolidayCheck: holidayCheck,
	})
}

func runServe(ctx *cli.Context) error {
	input := serveInput
	if input == "" {
		input = ctx.Args().First()
	}
	if input == "" {
		return printErrWithCmdHelp(ctx, errInputRequired)
	}

	if err := app.LoadAuthCredentials(); err != nil {
		return err
	}

	srv, err := app.NewServer(afero.NewOsFs(), input)
	if err != nil {
		return err
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("Starting Harmonogram on http://localhost:%d", servePort)
	if err := srv.Start(fmt.Sprintf(":%d", servePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runHashPassword(ctx *cli.Context) error {
	return commands.HashPassword(overwriteAuth, insecureUnmask)
}

func printErrWithCmdHelp(ctx *cli.Context, err error) error {
	if helpErr := cli.ShowCommandHelp(ctx, ctx.Command.Name); helpErr != nil {
		return helpErr
	}
	return err
}

func usageErrorCallback(ctx *cli.Context, err error, isSubcommand bool) error {
	fmt.Fprintf(os.Stderr, "%s: %s\n\n", ctx.App.HelpName, err.Error())
	if isSubcommand {
		return cli.ShowSubcommandHelp(ctx)
	}
	return cli.ShowAppHelp(ctx)
}

func help(ctx *cli.Context) error {
	args := ctx.Args()
	if args.Present() {
		return cli.ShowCommandHelp(ctx, args.First())
	}
	return cli.ShowAppHelp(ctx)
}

func getVersion(ctx *cli.Context) error {
	fmt.Printf("%s version %s (%s/%s)\n", ctx.App.HelpName, ctx.App.Version, runtime.GOOS, runtime.GOARCH)
	return nil
}
