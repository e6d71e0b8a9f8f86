package sysinfo

import (
	"fmt"
	"strconv"
	"time"

	"hello/config"
)

var clockIcons = [12]string{"🕛", "🕐", "🕑", "🕒", "🕓", "🕔", "🕕", "🕖", "🕗", "🕘", "🕙", "🕚"}

// Greeting returns the time-of-day greeting with its emoji.
func Greeting(hour int) string {
	switch {
	case hour >= 6 && hour <= 11:
		return "🌇 Good morning"
	case hour >= 12 && hour <= 17:
		return "🏙️ Good afternoon"
	case hour >= 18 && hour <= 22:
		return "🌆 Good evening"
	default:
		return "🌃 Good night"
	}
}

// OrdinalDay renders a day of month with its English suffix, e.g. 22 -> "22nd".
func OrdinalDay(day int) string {
	suffix := "th"
	switch day {
	case 1, 21, 31:
		suffix = "st"
	case 2, 22:
		suffix = "nd"
	case 3, 23:
		suffix = "rd"
	}
	return strconv.Itoa(day) + suffix
}

// ClockIcon returns the analog clock face for the hour.
func ClockIcon(hour int) string {
	return clockIcons[((hour%12)+12)%12]
}

// FormatTime renders t per the configured time format; unknown formats render "off".
func FormatTime(t time.Time, format string) string {
	switch format {
	case config.TimeFormat12h:
		return t.Format("3:04 PM")
	case config.TimeFormat24h:
		return t.Format("15:04")
	default:
		return "off"
	}
}

func greetingFact(cfg *config.Config, now time.Time) string {
	return fmt.Sprintf("%s, %s!", Greeting(now.Hour()), cfg.Name)
}

func dateTimeFact(cfg *config.Config, now time.Time) string {
	return fmt.Sprintf("%s %s %s, %s",
		ClockIcon(now.Hour()), now.Month(), OrdinalDay(now.Day()), FormatTime(now, cfg.TimeFormat))
}
