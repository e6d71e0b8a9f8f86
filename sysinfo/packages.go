package sysinfo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Manager identifies a supported package manager.
type Manager int

// Supported package managers.
const (
	Pacman Manager = iota + 1
	Apt
	Xbps
	Portage
	Apk
	Dnf
)

// NotConfigured is the count returned when no package managers are configured.
const NotConfigured = -1

var managerNames = map[string]Manager{
	"pacman":  Pacman,
	"apt":     Apt,
	"xbps":    Xbps,
	"portage": Portage,
	"apk":     Apk,
	"dnf":     Dnf,
}

// ParseManager maps a config value to a Manager. Unknown names report false.
func ParseManager(name string) (Manager, bool) {
	m, ok := managerNames[name]
	return m, ok
}

func (m Manager) String() string {
	for name, v := range managerNames {
		if v == m {
			return name
		}
	}
	return "unknown"
}

// query is one command plus the rule turning its stdout into a count.
type query struct {
	name  string
	args  []string
	count func(stdout string) int
}

// updateQuery returns the pending-update check for m.
func (m Manager) updateQuery() query {
	switch m {
	case Pacman:
		return query{"checkupdates", nil, skipLines(0)}
	case Apt:
		return query{"apt", []string{"list", "-u"}, skipLines(2)}
	case Xbps:
		return query{"xbps-install", []string{"-Sun"}, skipLines(0)}
	case Portage:
		return query{"eix", []string{"-u", "--format", "<installedversions:nameversion>"}, portageUpdates}
	case Apk:
		return query{"apk", []string{"-u", "list"}, skipLines(0)}
	case Dnf:
		return query{"dnf", []string{"check-update"}, skipLines(2)}
	}
	panic(fmt.Sprintf("sysinfo: no update query for manager %d", int(m)))
}

// installedQuery returns the installed-package listing for m.
func (m Manager) installedQuery() query {
	switch m {
	case Pacman:
		return query{"pacman", []string{"-Q"}, skipLines(0)}
	case Apt:
		return query{"dpkg-query", []string{"-l"}, linesWithPrefix("ii")}
	case Xbps:
		return query{"xbps-query", []string{"-l"}, skipLines(0)}
	case Portage:
		return query{"eix-installed", []string{"-a"}, skipLines(0)}
	case Apk:
		return query{"apk", []string{"info"}, skipLines(0)}
	case Dnf:
		return query{"dnf", []string{"list", "installed"}, skipLines(1)}
	}
	panic(fmt.Sprintf("sysinfo: no installed query for manager %d", int(m)))
}

// CountUpdates sums pending updates across the configured managers.
// It returns NotConfigured when names is nil.
func CountUpdates(ctx context.Context, r Runner, names []string, log zerolog.Logger) (int, error) {
	return sumQueries(ctx, r, names, Manager.updateQuery, log)
}

// CountInstalled sums installed packages across the configured managers.
// It returns NotConfigured when names is nil.
func CountInstalled(ctx context.Context, r Runner, names []string, log zerolog.Logger) (int, error) {
	return sumQueries(ctx, r, names, Manager.installedQuery, log)
}

func sumQueries(ctx context.Context, r Runner, names []string, pick func(Manager) query, log zerolog.Logger) (int, error) {
	if names == nil {
		return NotConfigured, nil
	}

	total := 0
	for _, name := range names {
		m, ok := ParseManager(name)
		if !ok {
			log.Debug().Str("manager", name).Msg("skipping unknown package manager")
			continue
		}
		p := pick(m)
		// Exit status is ignored: checkupdates exits 2 and dnf exits 100 as part of normal output.
		res, err := r.Run(ctx, p.name, p.args...)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", m, err)
		}
		n := p.count(res.Stdout)
		log.Debug().Str("manager", m.String()).Str("cmd", p.name).Int("count", n).Msg("package count")
		total += n
	}
	return total, nil
}

// outputLines splits command output into lines, ignoring the trailing newline.
func outputLines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// skipLines counts output lines after dropping n header lines.
func skipLines(n int) func(string) int {
	return func(out string) int {
		return max(len(outputLines(out))-n, 0)
	}
}

// linesWithPrefix counts output lines starting with prefix.
func linesWithPrefix(prefix string) func(string) int {
	return func(out string) int {
		count := 0
		for _, line := range outputLines(out) {
			if strings.HasPrefix(line, prefix) {
				count++
			}
		}
		return count
	}
}

// portageUpdates reads eix's summary line ("Found 7 matches" / "No matches").
func portageUpdates(out string) int {
	lines := outputLines(out)
	last := ""
	if len(lines) > 0 {
		last = lines[len(lines)-1]
	}
	return parsePortageToken(cutField(last, ' ', 2))
}

// parsePortageToken maps the second field of eix's summary to a count. "matches"
// (from "No matches") is zero; anything else that is not a number counts as one.
func parsePortageToken(token string) int {
	if token == "matches" {
		return 0
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 1
	}
	return n
}

// cutField mirrors cut -d sep -f n: lines without sep are returned whole.
func cutField(line string, sep byte, n int) string {
	if strings.IndexByte(line, sep) < 0 {
		return line
	}
	fields := strings.Split(line, string(sep))
	if n-1 < len(fields) {
		return fields[n-1]
	}
	return ""
}

var updateGlyphs = [...]string{"☑️", "1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"}

// UpdatesText renders the updates row.
func UpdatesText(n int) string {
	switch {
	case n == 0:
		return updateGlyphs[0] + " Up to date"
	case n == 1:
		return updateGlyphs[1] + " 1 update"
	case n > 1 && n < len(updateGlyphs):
		return fmt.Sprintf("%s %d updates", updateGlyphs[n], n)
	default:
		return fmt.Sprintf("‼️ %d updates", n)
	}
}

// PackagesText renders the installed packages row.
func PackagesText(n int) string {
	switch n {
	case 0:
		return "📦 No packages"
	case 1:
		return "📦 1 package"
	default:
		return fmt.Sprintf("📦 %d packages", n)
	}
}
