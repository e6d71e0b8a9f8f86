package sysinfo

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// fakeRunner answers commands from canned results keyed by "name arg1 arg2".
type fakeRunner struct {
	results map[string]Result
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (Result, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	res, ok := f.results[key]
	if !ok {
		return Result{}, fmt.Errorf("run %s: %w", name, exec.ErrNotFound)
	}
	return res, nil
}

func lines(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return b.String()
}

type fakeResources struct {
	load       float64
	total      uint64
	free       uint64
	diskFree   uint64
	err        error
	diskPathFn func(string)
}

func (f fakeResources) LoadAverage(context.Context) (float64, error) { return f.load, f.err }

func (f fakeResources) Memory(context.Context) (uint64, uint64, error) {
	return f.total, f.free, f.err
}

func (f fakeResources) DiskFree(_ context.Context, path string) (uint64, error) {
	if f.diskPathFn != nil {
		f.diskPathFn(path)
	}
	return f.diskFree, f.err
}

type fakeWeather struct {
	c     *Conditions
	err   error
	query WeatherQuery
	calls int
}

func (f *fakeWeather) Current(_ context.Context, q WeatherQuery) (*Conditions, error) {
	f.calls++
	f.query = q
	return f.c, f.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
