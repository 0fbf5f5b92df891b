package notification

import (
	"time"
	_ "time/tzdata"
)

// studioZone is the zone submission times are shown in.
var studioZone = loadZone("Asia/Kolkata")

func loadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

// FormatTime renders t in the studio zone, e.g.
// "Thursday, 15 October 2026 at 02:30 pm IST".
func FormatTime(t time.Time) string {
	return t.In(studioZone).Format("Monday, 2 January 2006 at 03:04 pm MST")
}

// FormatClock renders t in the studio zone as a 24-hour numeric timestamp,
// e.g. "15/10/2026, 14:30:00".
func FormatClock(t time.Time) string {
	return t.In(studioZone).Format("02/01/2006, 15:04:05")
}
