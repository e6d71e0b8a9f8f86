package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rivo/uniseg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hello/ascii"
	"hello/config"
	"hello/sysinfo"
)

const songCommand = "playerctl metadata -f {{ artist }} - {{ title }}"

type cannedRunner map[string]sysinfo.Result

func (c cannedRunner) Run(_ context.Context, name string, args ...string) (sysinfo.Result, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	res, ok := c[key]
	if !ok {
		return sysinfo.Result{}, fmt.Errorf("unexpected command %q", key)
	}
	return res, nil
}

type cannedWeather struct{ c sysinfo.Conditions }

func (w cannedWeather) Current(context.Context, sysinfo.WeatherQuery) (*sysinfo.Conditions, error) {
	return &w.c, nil
}

type cannedResources struct{}

func (cannedResources) LoadAverage(context.Context) (float64, error) { return 1.27, nil }

func (cannedResources) Memory(context.Context) (uint64, uint64, error) {
	return 32 << 30, 20 << 30, nil
}

func (cannedResources) DiskFree(context.Context, string) (uint64, error) { return 512 << 30, nil }

func cannedEnv(time.Duration, zerolog.Logger) sysinfo.Env {
	return sysinfo.Env{
		Runner: cannedRunner{
			"lsb_release -s -d": {Stdout: "\"Arch Linux\"\n"},
			"uname -sr":         {Stdout: "Linux 6.18.44-arch1-1\n"},
			"checkupdates":      {Stdout: "linux 6.18.44 -> 6.18.45\nmesa 25.1 -> 25.2\n"},
			"pacman -Q":         {Stdout: strings.Repeat("pkg 1.0\n", 1024)},
			songCommand:         {Stdout: "Boards of Canada - Roygbiv\n"},
		},
		Weather:   cannedWeather{c: sysinfo.Conditions{Icon: "02d", Main: "Clouds", Temp: 18.6}},
		Resources: cannedResources{},
		Now:       func() time.Time { return time.Date(2026, time.October, 21, 14, 5, 0, 0, time.Local) },
		Getenv: func(k string) string {
			if k == "XDG_CURRENT_DESKTOP" {
				return "KDE"
			}
			return ""
		},
		Log: zerolog.Nop(),
	}
}

const testConfig = `{
	"name": "Ada",
	"hostname": "engine",
	"location": "London",
	"units": "metric",
	"lang": "en",
	"api_key": "secret",
	"time_format": "12h",
	"package_managers": "pacman"
}`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReportEndToEnd(t *testing.T) {
	path := writeConfig(t, testConfig)

	var stdout, stderr bytes.Buffer
	cmd := newRootCommandWith(cannedEnv)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--config", path})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	got := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	want := []string{
		ascii.Header("engine"),
		ascii.Row("🏙️ Good afternoon, Ada!"),
		ascii.Row("🕑 October 21st, 2:05 PM"),
		ascii.Row("⛅️ Clouds 18°C"),
		ascii.Row("💻 Arch Linux"),
		ascii.Row("🫀 Linux 6.18.44-arch1-1"),
		ascii.Row("🔌 12% Used"),
		ascii.Row("🧠 13 GB Used"),
		ascii.Row("💾 550 GB Free"),
		ascii.Row("🖥️ KDE"),
		ascii.Row("2️⃣ 2 updates"),
		ascii.Row("📦 1024 packages"),
		ascii.Row("🎵 Boards of Canada - Roygbiv"),
		ascii.Footer(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "│ 🏙️ Good afternoon, Ada!                     │", got[1])
	assert.Equal(t, ascii.HeaderWidth+1, uniseg.GraphemeClusterCount(got[0]))
	for _, line := range got[1 : len(got)-1] {
		assert.Equal(t, ascii.BodyWidth+1, uniseg.GraphemeClusterCount(line), line)
	}
	assert.Equal(t, ascii.BodyWidth+2, uniseg.GraphemeClusterCount(got[len(got)-1]))
	assert.Empty(t, stderr.String())
}

func TestReportSuppressedRows(t *testing.T) {
	path := writeConfig(t, `{
		"name": "Ada", "hostname": "engine", "location": "London", "units": "imperial",
		"lang": "en", "api_key": "secret", "time_format": "24h", "song": false
	}`)

	newEnv := func(d time.Duration, l zerolog.Logger) sysinfo.Env {
		env := cannedEnv(d, l)
		env.Getenv = func(string) string { return "" }
		return env
	}

	var stdout bytes.Buffer
	cmd := newRootCommandWith(newEnv)
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"-c", path})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	got := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	require.Len(t, got, 10)
	assert.Equal(t, ascii.Row("⛅️ Clouds 18°F"), got[3])
	assert.Equal(t, ascii.Row("🕑 October 21st, 14:05"), got[2])
	assert.NotContains(t, stdout.String(), "📦")
	assert.NotContains(t, stdout.String(), "🎵")
	assert.NotContains(t, stdout.String(), "🖥️")
}

func TestReportFailurePrintsNothing(t *testing.T) {
	path := writeConfig(t, testConfig)

	newEnv := func(d time.Duration, l zerolog.Logger) sysinfo.Env {
		env := cannedEnv(d, l)
		env.Runner = cannedRunner{}
		return env
	}

	var stdout bytes.Buffer
	cmd := newRootCommandWith(newEnv)
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"-c", path})
	err := cmd.ExecuteContext(context.Background())

	var ce *sysinfo.CollectError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "release", ce.Fact)
	assert.Empty(t, stdout.String())
}

func TestMissingConfig(t *testing.T) {
	cmd := newRootCommandWith(cannedEnv)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.json")})
	err := cmd.ExecuteContext(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMissingRequiredKey(t *testing.T) {
	path := writeConfig(t, `{"name": "Ada"}`)
	cmd := newRootCommandWith(cannedEnv)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-c", path})
	err := cmd.ExecuteContext(context.Background())
	require.ErrorIs(t, err, config.ErrMissingKey)
}

func TestDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", config.AppName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(testConfig), 0o600))

	var stdout bytes.Buffer
	cmd := newRootCommandWith(cannedEnv)
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, stdout.String(), "engine")
}

func TestRejectsPositionalArgs(t *testing.T) {
	cmd := newRootCommandWith(cannedEnv)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})
	require.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestNewLoggerLevels(t *testing.T) {
	t.Setenv("HELLO_DEBUG", "")
	t.Setenv("LOG_LEVEL", "")

	var buf bytes.Buffer
	log := newLogger(&buf, false)
	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	log = newLogger(&buf, true)
	log.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	t.Setenv("LOG_LEVEL", "error")
	log = newLogger(&buf, true)
	log.Warn().Msg("quiet")
	assert.Empty(t, buf.String())
}
