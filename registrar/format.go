package registrar

import (
	"fmt"
	"strconv"
	"strings"

	"coursereg/model"
)

// To12h converts "HH:MM" to a 12-hour clock string such as "1:05 PM".
// Midnight is 12 AM and noon is 12 PM. Values that do not parse are returned
// unchanged.
func To12h(t string) string {
	hh, mm, ok := strings.Cut(strings.TrimSpace(t), ":")
	if !ok {
		return t
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 {
		return t
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 {
		return t
	}

	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, ampm)
}

// MeetingsString renders meetings as "Mon 9:00 AM-10:15 AM, Wed ..." in the
// order given.
func MeetingsString(meetings []model.Meeting) string {
	parts := make([]string, 0, len(meetings))
	for _, m := range meetings {
		parts = append(parts, fmt.Sprintf("%s %s-%s", m.DayLabel, To12h(m.Start), To12h(m.End)))
	}
	return strings.Join(parts, ", ")
}
