package sysinfo

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// noPlayers is what playerctl prints on stderr when nothing is playing.
const noPlayers = "No players found"

// songFormat is the playerctl metadata template for the now-playing row.
const songFormat = "{{ artist }} - {{ title }}"

// getRelease returns the distribution description from lsb_release.
func getRelease(ctx context.Context, r Runner) (string, error) {
	out, err := runChecked(ctx, r, "lsb_release", "-s", "-d")
	if err != nil {
		return "", err
	}
	return truncateFact(strings.Trim(trimOutput(out), `"`)), nil
}

// getKernel returns the kernel name and release from uname.
func getKernel(ctx context.Context, r Runner) (string, error) {
	out, err := runChecked(ctx, r, "uname", "-sr")
	if err != nil {
		return "", err
	}
	return truncateFact(out), nil
}

// getDesktop reads XDG_CURRENT_DESKTOP. An empty value suppresses the row.
func getDesktop(getenv func(string) string) (string, error) {
	de := strings.TrimSpace(getenv("XDG_CURRENT_DESKTOP"))
	if de == "" {
		return "", ErrSuppressed
	}
	return UpperFirst(de), nil
}

// getSong asks playerctl for the current track. Nothing playing, or any
// playerctl failure after it started, suppresses the row.
func getSong(ctx context.Context, r Runner, log zerolog.Logger) (string, error) {
	res, err := r.Run(ctx, "playerctl", "metadata", "-f", songFormat)
	if err != nil {
		return "", err
	}
	if strings.Contains(res.Stderr, noPlayers) {
		return "", ErrSuppressed
	}
	if res.ExitCode != 0 {
		log.Debug().
			Int("exit", res.ExitCode).
			Str("stderr", trimOutput(res.Stderr)).
			Msg("playerctl has no track to report")
		return "", ErrSuppressed
	}
	song := truncateFact(res.Stdout)
	if song == "" {
		return "", ErrSuppressed
	}
	return song, nil
}
