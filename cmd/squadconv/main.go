package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/eugenenazirov/squadconv/internal/application"
)

func main() {
	if err := run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", application.Name, err)
		os.Exit(1)
	}
}

func run(args, environ []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	app, err := application.Bootstrap(opts, environ, stderr,
		application.WithConsole(stderr),
		application.WithStdout(stdout),
	)
	if err != nil {
		return err
	}

	runErr := app.Run()
	return errors.Join(runErr, app.Close())
}

func parseArgs(args []string, stderr io.Writer) (application.Options, error) {
	kingpinApp := kingpin.New(application.Name, "Squad document converter - transcodes a squad record between JSON and YAML")
	kingpinApp.UsageWriter(stderr)
	kingpinApp.ErrorWriter(stderr)

	settingsDir := kingpinApp.Flag("settings-dir", "The location of the settings files").Short('s').Default("settings").String()
	from := kingpinApp.Flag("from", "Input format (json, yaml)").Default("json").Enum("json", "yaml", "yml")
	to := kingpinApp.Flag("to", "Output format (json, yaml)").Default("yaml").Enum("json", "yaml", "yml")
	input := kingpinApp.Arg("input", "Input file").Required().String()
	output := kingpinApp.Arg("output", "Output file. Defaults to stdout").String()

	if _, err := kingpinApp.Parse(args); err != nil {
		return application.Options{}, err
	}

	return application.Options{
		SettingsDir: *settingsDir,
		Input:       *input,
		Output:      *output,
		From:        *from,
		To:          *to,
	}, nil
}
