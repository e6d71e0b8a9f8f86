// Package sysinfo gathers the facts shown by the greeter.
// Each collector produces one display string; GetSystemInfo runs them in report
// order and decides what a failure means for the report as a whole.
package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"hello/config"
)

// ANSI color codes for terminal output formatting
const (
	ColorReset = "\033[0m"
	ColorGreen = "\033[32m"
)

// ErrSuppressed is returned by a collector whose row should be left out of the report.
var ErrSuppressed = errors.New("row suppressed")

// CollectError reports the fact whose collector aborted the report.
type CollectError struct {
	Fact string
	Err  error
}

func (e *CollectError) Error() string {
	return fmt.Sprintf("collect %s: %v", e.Fact, e.Err)
}

func (e *CollectError) Unwrap() error { return e.Err }

// Fact is one rendered row of the report.
type Fact struct {
	// Name identifies the collector, e.g. "weather".
	Name string

	// Text is the display string without borders.
	Text string
}

// SystemInfo is everything the report prints.
type SystemInfo struct {
	// Hostname is shown in the header.
	Hostname string

	// Facts are the body rows in print order. Suppressed rows are absent.
	Facts []Fact
}

// Text returns the text of the named fact and whether it was collected.
func (s *SystemInfo) Text(name string) (string, bool) {
	for _, f := range s.Facts {
		if f.Name == name {
			return f.Text, true
		}
	}
	return "", false
}

// Env carries the collaborators collectors use to reach the outside world.
type Env struct {
	Runner    Runner
	Weather   WeatherFetcher
	Resources Resources
	Now       func() time.Time
	Getenv    func(string) string
	Log       zerolog.Logger
}

// NewEnv returns an Env wired to the real system.
func NewEnv(weatherTimeout time.Duration, log zerolog.Logger) Env {
	return Env{
		Runner:    ExecRunner{Log: log},
		Weather:   NewOpenWeatherMap(weatherTimeout, log),
		Resources: HostResources{},
		Now:       time.Now,
		Getenv:    os.Getenv,
		Log:       log,
	}
}

type collector struct {
	name    string
	collect func(ctx context.Context) (string, error)
}

// collectors lists every fact in report order.
func collectors(cfg *config.Config, env Env) []collector {
	now := env.Now()
	return []collector{
		{"greeting", func(context.Context) (string, error) {
			return greetingFact(cfg, now), nil
		}},
		{"datetime", func(context.Context) (string, error) {
			return dateTimeFact(cfg, now), nil
		}},
		{"weather", func(ctx context.Context) (string, error) {
			c, err := env.Weather.Current(ctx, WeatherQuery{
				Location: cfg.Location,
				Units:    cfg.Units,
				Lang:     cfg.Lang,
				APIKey:   cfg.APIKey,
			})
			if err != nil {
				return "", err
			}
			return FormatWeather(c, cfg.Units), nil
		}},
		{"release", func(ctx context.Context) (string, error) {
			rel, err := getRelease(ctx, env.Runner)
			return "💻 " + rel, err
		}},
		{"kernel", func(ctx context.Context) (string, error) {
			k, err := getKernel(ctx, env.Runner)
			return "🫀 " + k, err
		}},
		{"cpu", func(ctx context.Context) (string, error) {
			l, err := env.Resources.LoadAverage(ctx)
			return "🔌 " + cpuFact(l), err
		}},
		{"memory", func(ctx context.Context) (string, error) {
			total, free, err := env.Resources.Memory(ctx)
			return "🧠 " + memoryFact(total, free), err
		}},
		{"disk", func(ctx context.Context) (string, error) {
			free, err := env.Resources.DiskFree(ctx, "/")
			return "💾 " + diskFact(free), err
		}},
		{"desktop", func(context.Context) (string, error) {
			de, err := getDesktop(env.Getenv)
			return "🖥️ " + de, err
		}},
		{"updates", func(ctx context.Context) (string, error) {
			n, err := CountUpdates(ctx, env.Runner, cfg.PackageManagers, env.Log)
			if err != nil {
				return "", err
			}
			if n == NotConfigured {
				return "", ErrSuppressed
			}
			return UpdatesText(n), nil
		}},
		{"packages", func(ctx context.Context) (string, error) {
			n, err := CountInstalled(ctx, env.Runner, cfg.PackageManagers, env.Log)
			if err != nil {
				return "", err
			}
			if n == NotConfigured {
				return "", ErrSuppressed
			}
			return PackagesText(n), nil
		}},
		{"song", func(ctx context.Context) (string, error) {
			if !cfg.SongEnabled() {
				return "", ErrSuppressed
			}
			song, err := getSong(ctx, env.Runner, env.Log)
			return "🎵 " + song, err
		}},
	}
}

// GetSystemInfo runs every collector in report order.
//
// Parameters:
//   - ctx: Cancels external commands and the weather request
//   - cfg: The loaded configuration
//   - env: Collaborators for commands, HTTP, kernel statistics and the clock
//
// Returns:
//   - A populated SystemInfo with suppressed rows left out
//   - A *CollectError for the first collector that failed; no partial report is returned
func GetSystemInfo(ctx context.Context, cfg *config.Config, env Env) (*SystemInfo, error) {
	info := &SystemInfo{Hostname: cfg.Hostname}

	for _, c := range collectors(cfg, env) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		text, err := c.collect(ctx)
		switch {
		case errors.Is(err, ErrSuppressed):
			env.Log.Debug().Str("fact", c.name).Msg("row suppressed")
			continue
		case err != nil:
			return nil, &CollectError{Fact: c.name, Err: err}
		}
		env.Log.Debug().Str("fact", c.name).Dur("took", time.Since(start)).Msg("fact collected")
		info.Facts = append(info.Facts, Fact{Name: c.name, Text: text})
	}

	return info, nil
}
