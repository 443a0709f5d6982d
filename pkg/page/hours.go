package page

import (
	"time"

	"huangye/pkg/model"
)

// TodayHours returns today's opening-hours line from a 7-entry weekday
// text array. The array is Monday-first (the provider wire order) while
// time.Weekday counts Sunday as 0, hence the shifted index.
func TodayHours(hours *model.OpeningHours, now time.Time) string {
	if hours == nil || len(hours.WeekdayText) != 7 {
		return ""
	}
	idx := (int(now.Weekday()) + 6) % 7
	return hours.WeekdayText[idx]
}
