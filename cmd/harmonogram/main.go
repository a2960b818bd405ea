package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/klabast/wb-services/harmonogram/internal/app"
)

var version = "dev"

var (
	outputFormat string
	calendarName string
	reminders    cli.StringSlice
	holidayCheck bool

	servePort  int
	serveInput string

	overwriteAuth  bool
	insecureUnmask bool
)

var convertFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "format, f",
		Usage:       "output format: ics, csv or json",
		Value:       app.FormatICS,
		Destination: &outputFormat,
	},
	cli.StringFlag{
		Name:        "calendar-name, n",
		Usage:       "calendar display name for ICS output",
		Destination: &calendarName,
	},
	cli.StringSliceFlag{
		Name:  "reminder, r",
		Usage: "reminder lead time before each collection, e.g. 18h or 1d7h30m (repeatable)",
		Value: &reminders,
	},
	cli.BoolFlag{
		Name:        "holiday-check",
		Usage:       "warn about collections landing on public holidays",
		Destination: &holidayCheck,
	},
}

var serveFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "input, i",
		Usage:       "path to the collection sheet (CSV)",
		EnvVar:      "HARMONOGRAM_INPUT",
		Destination: &serveInput,
	},
	cli.IntFlag{
		Name:        "port, p",
		Usage:       "port to listen on",
		Value:       8080,
		EnvVar:      "HARMONOGRAM_PORT",
		Destination: &servePort,
	},
}

var hashPasswordFlags = []cli.Flag{
	cli.BoolFlag{
		Name:        "overwrite",
		Usage:       "overwrite an existing auth file without asking",
		Destination: &overwriteAuth,
	},
	cli.BoolFlag{
		Name:        "insecure-unmask-password",
		Usage:       "show the password as plain text while typing (INSECURE!)",
		Destination: &insecureUnmask,
	},
}

func newApp() *cli.App {
	cliApp := cli.NewApp()
	cliApp.Name = "harmonogram"
	cliApp.HelpName = "harmonogram"
	cliApp.Usage = "convert PUK Piaseczno waste collection sheets into calendars"
	cliApp.UsageText = "harmonogram [command] [options] [arguments...]"
	cliApp.Version = version
	cliApp.HideHelp = true
	cliApp.OnUsageError = usageErrorCallback

	cliApp.Commands = []cli.Command{
		{
			Name:         "convert",
			Aliases:      []string{"c"},
			Usage:        "convert a collection sheet into a calendar file",
			ArgsUsage:    "INPUT [OUTPUT]",
			Flags:        convertFlags,
			Action:       runConvert,
			OnUsageError: usageErrorCallback,
		},
		{
			Name:         "serve",
			Aliases:      []string{"s"},
			Usage:        "serve a collection sheet as calendar feeds over HTTP",
			ArgsUsage:    "[INPUT]",
			Flags:        serveFlags,
			Action:       runServe,
			OnUsageError: usageErrorCallback,
		},
		{
			Name:   "hash-password",
			Usage:  "create the auth file protecting the reload endpoint",
			Flags:  hashPasswordFlags,
			Action: runHashPassword,
		},
		{
			Name:    "version",
			Aliases: []string{"v"},
			Usage:   "print the version",
			Action:  getVersion,
		},
		{
			Name:      "help",
			Aliases:   []string{"h"},
			Usage:     "show help for a command",
			ArgsUsage: "[command]",
			Action:    help,
		},
	}

	// Bare "harmonogram INPUT [OUTPUT]" behaves like the convert command.
	cliApp.Flags = convertFlags
	cliApp.Action = runConvert

	return cliApp
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "harmonogram: %s\n", err)
		os.Exit(1)
	}
}
