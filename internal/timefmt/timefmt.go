// Package timefmt renders countdowns, exam durations and relative dates.
package timefmt

import (
	"fmt"
	"strings"
	"time"
)

// Clock formats seconds as MM:SS. Minutes are not wrapped into hours.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Duration formats an exam length given in minutes.
func Duration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	h, m := minutes/60, minutes%60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

// Unit is the granularity of a relative date.
type Unit string

const (
	UnitToday     Unit = "today"
	UnitYesterday Unit = "yesterday"
	UnitDays      Unit = "days"
	UnitWeeks     Unit = "weeks"
	UnitMonths    Unit = "months"
)

// Elapsed is a relative date such as "3 days ago".
type Elapsed struct {
	Unit  Unit
	Count int
}

// Since buckets the absolute distance between t and now into whole days.
func Since(t, now time.Time) Elapsed {
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(diff / (24 * time.Hour))
	switch {
	case days == 0:
		return Elapsed{Unit: UnitToday}
	case days == 1:
		return Elapsed{Unit: UnitYesterday, Count: 1}
	case days < 7:
		return Elapsed{Unit: UnitDays, Count: days}
	case days < 30:
		return Elapsed{Unit: UnitWeeks, Count: days / 7}
	default:
		return Elapsed{Unit: UnitMonths, Count: days / 30}
	}
}

// String is the English rendering, used where no localizer is available.
func (e Elapsed) String() string {
	switch e.Unit {
	case UnitToday:
		return "Today"
	case UnitYesterday:
		return "Yesterday"
	default:
		unit := string(e.Unit)
		if e.Count == 1 {
			unit = strings.TrimSuffix(unit, "s")
		}
		return fmt.Sprintf("%d %s ago", e.Count, unit)
	}
}

// Minutes converts a time spent in seconds to whole minutes, rounding down.
func Minutes(seconds int) int {
	if seconds < 0 {
		return 0
	}
	return seconds / 60
}
