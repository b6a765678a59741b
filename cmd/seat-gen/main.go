package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

const (
	exitOK           = 0
	exitFailure      = 1
	exitInvalidInput = 2
	exitVerify       = 3
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app := &cli.App{
		Name:      "seat-gen",
		Usage:     "Utility for seating students on exam hall benches",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "load environment variables from a dotenv file",
			},
		},
		Before: func(ctx *cli.Context) error {
			if file := ctx.String("env-file"); file != "" {
				if err := godotenv.Load(file); err != nil {
					return cli.Exit(fmt.Sprintf("load env file failed: %v", err), exitFailure)
				}
			}
			return nil
		},
		Commands: []*cli.Command{
			assignCmd(),
			verifyCmd(),
		},
		// exit codes are handled below
		ExitErrHandler: func(*cli.Context, error) {},
	}

	err := app.Run(args)
	if err == nil {
		return exitOK
	}

	fmt.Fprintln(stderr, "Error: ", err)

	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return exitFailure
}
