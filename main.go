// Package main provides the hello command-line tool, a greeter that prints a boxed
// summary of the system: time of day, weather, OS, resources, packages and music.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"hello/ascii"
	"hello/config"
	"hello/sysinfo"
)

// main is the entry point for the hello application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// envFactory builds the collectors' collaborators once flags are known.
type envFactory func(weatherTimeout time.Duration, log zerolog.Logger) sysinfo.Env

func newRootCommand() *cobra.Command {
	return newRootCommandWith(sysinfo.NewEnv)
}

func newRootCommandWith(newEnv envFactory) *cobra.Command {
	var (
		configFlag string
		debug      bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:           "hello",
		Short:         "A simple greeter for your terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFlag
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			log := newLogger(cmd.ErrOrStderr(), debug)
			log.Debug().Str("config", path).Msg("configuration loaded")

			info, err := sysinfo.GetSystemInfo(cmd.Context(), cfg, newEnv(timeout, log))
			if err != nil {
				return err
			}
			return displayInfo(cmd.OutOrStdout(), info)
		},
	}

	cmd.Flags().StringVarP(&configFlag, "config", "c", "", "Specify a path to a config file")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging on stderr (also HELLO_DEBUG=1)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Timeout for the weather request")

	return cmd
}

// newLogger returns a console logger on w. Only warnings are shown unless debug is
// requested; LOG_LEVEL overrides both.
func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug || os.Getenv("HELLO_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// displayInfo writes the boxed report: hostname header, one row per fact, footer.
//
// Parameters:
//   - w: Destination, normally standard output
//   - info: Collected facts in print order
//
// Returns:
//   - The first write error, if any
func displayInfo(w io.Writer, info *sysinfo.SystemInfo) error {
	lines := make([]string, 0, len(info.Facts)+2)
	lines = append(lines, ascii.Header(info.Hostname))
	for _, f := range info.Facts {
		lines = append(lines, ascii.Row(f.Text))
	}
	lines = append(lines, ascii.Footer())

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
