package services

import (
	"time"

	"github.com/yungbote/kazlearn-backend/internal/domain/progress"
)

// Streaks longer than this are not scanned past.
const maxStreakScan = 3660

// streakLength counts consecutive days, newest first, ending today or
// yesterday. A gap of more than one day before today yields 0.
func streakLength(daysDesc []string, now time.Time) int {
	if len(daysDesc) == 0 {
		return 0
	}
	today := truncateDay(now)
	first, err := time.Parse(progress.DayLayout, daysDesc[0])
	if err != nil {
		return 0
	}
	gap := int(today.Sub(first).Hours() / 24)
	if gap > 1 || gap < 0 {
		return 0
	}

	streak := 1
	prev := first
	for _, raw := range daysDesc[1:] {
		d, err := time.Parse(progress.DayLayout, raw)
		if err != nil {
			break
		}
		if !prev.AddDate(0, 0, -1).Equal(d) {
			break
		}
		streak++
		prev = d
	}
	return streak
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
